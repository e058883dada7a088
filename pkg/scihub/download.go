package scihub

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Download fetches the product archive into the destination directory and
// verifies it against the hub checksum. An archive already present is
// treated as complete and never fetched again. The local path is returned
// even when verification fails.
func (p *Product) Download(s *Search, destination string) (string, error) {
	filename, err := p.TargetFilename()
	if err != nil {
		return "", err
	}
	path := filepath.Join(destination, filename)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.fetchFile(p.Link, path, "Downloading "+filename); err != nil {
			return "", err
		}
	}

	expected, err := s.checksum(p.UUID)
	if err != nil {
		return "", fmt.Errorf("Fetch checksum - %v", err)
	}

	actual, err := fileMD5(path)
	if err != nil {
		return "", err
	}

	if actual != expected {
		log.Warnf("md5 checksum of %s failed, expected=%s, actual=%s", filename, expected, actual)
	}

	return path, nil
}

func (s *Search) fetchFile(rawURL, path, title string) error {
	body, size, err := s.stream(rawURL)
	if err != nil {
		return err
	}
	defer body.Close()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var written, reported int64
	buf := make([]byte, downloadChunkSize)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, err := f.Write(buf[:n]); err != nil {
				return err
			}
			written += int64(n)
			if size > 0 && written-reported >= size/10 {
				progressBar(title, written, size)
				reported = written
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return readErr
		}
	}

	if size > 0 {
		progressBar(title, written, size)
	}

	return nil
}

func (s *Search) checksumURL(uuid string) string {
	return s.domain + "/odata/v1/Products('" + uuid + "')/Checksum/Value/$value"
}

// checksum fetches the server-side digest for one product, normalized to
// lowercase hex
func (s *Search) checksum(uuid string) (string, error) {
	body, err := s.get(s.checksumURL(uuid))
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(string(body))), nil
}

// fileMD5 digests the whole file in fixed-size chunks
func fileMD5(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	size := info.Size()

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hash := md5.New()
	var read, reported int64
	buf := make([]byte, downloadChunkSize)
	for {
		n, readErr := f.Read(buf)
		if n > 0 {
			hash.Write(buf[:n])
			read += int64(n)
			if size > 0 && read-reported >= size/10 {
				progressBar("Calculating md5", read, size)
				reported = read
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return "", readErr
		}
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

func progressBar(title string, completed, total int64) {
	progress := float64(completed) / float64(total) * 100.0
	s := ("[")
	for pct := 0.0; pct <= 100.0; pct += 10.0 {
		if pct <= progress {
			s += "#"
		} else {
			s += "-"
		}
	}
	s += fmt.Sprintf("] %s%% completed", strconv.FormatFloat(progress, 'f', 2, 64))

	log.WithField("Progress", s).Info(title)
}
