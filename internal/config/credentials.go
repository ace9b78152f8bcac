// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// APIKeyEnv is the environment variable holding the Gemini API key.
const APIKeyEnv = "GEMINI_API_KEY"

// MissingCredentialError is returned when no API key could be found.
// It is fatal at startup.
type MissingCredentialError struct {
	// Path is the .env location the user is told to populate
	Path string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s not found in %s", APIKeyEnv, e.Path)
}

// DefaultEnvFiles returns the .env candidates in lookup order: next to the
// executable first, then the working directory.
func DefaultEnvFiles() []string {
	var paths []string
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		paths = append(paths, filepath.Join(filepath.Dir(exe), ".env"))
	}
	if wd, err := os.Getwd(); err == nil {
		p := filepath.Join(wd, ".env")
		if len(paths) == 0 || paths[0] != p {
			paths = append(paths, p)
		}
	}
	return paths
}

// LoadAPIKey loads every existing .env file in envFiles (variables already
// set in the environment win) and returns GEMINI_API_KEY.
// The first path is named in the error when the key is missing.
func LoadAPIKey(envFiles ...string) (string, error) {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return "", fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	key := strings.TrimSpace(os.Getenv(APIKeyEnv))
	if key == "" {
		where := ".env"
		if len(envFiles) > 0 {
			where = envFiles[0]
		}
		return "", &MissingCredentialError{Path: where}
	}
	return key, nil
}
