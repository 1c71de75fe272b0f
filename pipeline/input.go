package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadURLs returns the non-empty lines of r, trimmed, in order.
func ReadURLs(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}

// ReadURLFile reads the URL list at path.
func ReadURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	urls, err := ReadURLs(f)
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", path, err)
	}
	return urls, nil
}
