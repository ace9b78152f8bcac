// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"slices"
	"strings"
)

// ActionGenerateContent is the supported action that marks a model as
// usable for conversational generation.
const ActionGenerateContent = "generateContent"

// resourcePrefix is prepended by the service to every model name.
const resourcePrefix = "models/"

// =============================================================================
// DESCRIPTOR
// =============================================================================

// Descriptor describes a model exposed by the remote service.
type Descriptor struct {
	// ID is the model identifier without the "models/" resource prefix
	ID string

	// DisplayName is the human-readable name, if the service provides one
	DisplayName string

	// SupportedActions lists the API methods the model accepts
	SupportedActions []string
}

// NewDescriptor builds a Descriptor from a raw service model name.
func NewDescriptor(name, displayName string, actions []string) Descriptor {
	return Descriptor{
		ID:               NormalizeID(name),
		DisplayName:      displayName,
		SupportedActions: slices.Clone(actions),
	}
}

// Supports reports whether the model accepts the given action.
func (d Descriptor) Supports(action string) bool {
	return slices.Contains(d.SupportedActions, action)
}

// Conversational reports whether the model supports content generation.
func (d Descriptor) Conversational() bool {
	return d.Supports(ActionGenerateContent)
}

// NormalizeID strips the service resource prefix so identifiers compare
// equal whether they came from the catalog or from configuration.
func NormalizeID(id string) string {
	return strings.TrimPrefix(strings.TrimSpace(id), resourcePrefix)
}

// FilterConversational returns the descriptors that support content
// generation, preserving order.
func FilterConversational(all []Descriptor) []Descriptor {
	var out []Descriptor
	for _, d := range all {
		if d.Conversational() {
			out = append(out, d)
		}
	}
	return out
}
