// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package stacio is the I/O boundary of the catalog core: reading and
// writing document text at an href. All blocking happens here; failures
// propagate to the caller unmasked.
package stacio

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// IO reads and writes document text at an href. Hrefs are either local
// filesystem paths or http(s) URLs.
type IO interface {
	ReadText(href string) (string, error)
	WriteText(href string, content string) error
}

// DefaultIO serves filesystem paths and http(s) URLs. Writes to URLs are
// not supported.
type DefaultIO struct {
	Client *http.Client
}

// Default is the process-wide IO used when a tree has no override.
var Default IO = &DefaultIO{}

func (d *DefaultIO) ReadText(href string) (string, error) {
	if IsURL(href) {
		return d.readURL(href)
	}
	data, err := os.ReadFile(href)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", href, err)
	}
	return string(data), nil
}

func (d *DefaultIO) readURL(href string) (string, error) {
	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	log.Debug().Str("href", href).Msg("fetching document")
	resp, err := client.Get(href)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", href, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %s", href, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", href, err)
	}
	return string(body), nil
}

func (d *DefaultIO) WriteText(href string, content string) error {
	if IsURL(href) {
		return fmt.Errorf("write %s: writing to URLs is not supported", href)
	}
	if dir := filepath.Dir(href); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write %s: %w", href, err)
		}
	}
	if err := os.WriteFile(href, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", href, err)
	}
	log.Debug().Str("href", href).Int("bytes", len(content)).Msg("wrote document")
	return nil
}

// IsURL reports whether href has an http or https scheme.
func IsURL(href string) bool {
	u, err := url.Parse(href)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}
