package scihub

import (
	"compress/gzip"
	"context"
	"io"
	"io/ioutil"
	"net/http"
)

// get performs one authenticated GET and returns the whole response body.
// The hub compresses large result feeds when asked to.
func (s *Search) get(rawURL string) ([]byte, error) {
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(s.user, s.password)
	req.Header.Add("Accept-Encoding", "gzip")

	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)

	defer cancel()

	req = req.WithContext(ctx)

	resp, err := s.rawClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{
			Code:   resp.StatusCode,
			Status: resp.Status,
			URL:    rawURL,
		}
	}

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		reader = zr
	}

	return ioutil.ReadAll(reader)
}

// stream performs an authenticated GET without a deadline; product
// archives can outlive any reasonable request timeout.
func (s *Search) stream(rawURL string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.SetBasicAuth(s.user, s.password)

	resp, err := s.rawClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, &StatusError{
			Code:   resp.StatusCode,
			Status: resp.Status,
			URL:    rawURL,
		}
	}

	return resp.Body, resp.ContentLength, nil
}
