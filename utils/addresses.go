package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadAddresses reads one address per line, skipping blank lines
func ReadAddresses(r io.Reader) ([]string, error) {
	var addresses []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		addresses = append(addresses, line)
	}
	return addresses, scanner.Err()
}

// ReadAddressesFile reads an address list file
func ReadAddressesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening addresses file %v: %w", path, err)
	}
	defer f.Close()
	return ReadAddresses(f)
}

// SplitAddresses splits a comma separated address list
func SplitAddresses(list string) []string {
	var addresses []string
	for _, a := range strings.Split(list, ",") {
		if a = strings.TrimSpace(a); a != "" {
			addresses = append(addresses, a)
		}
	}
	return addresses
}
