// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package plugin

import "errors"

var (
	// ErrNilPlugin is returned when registering a nil plugin.
	ErrNilPlugin = errors.New("plugin cannot be nil")

	// ErrEmptyPluginName is returned when a plugin reports an empty name.
	ErrEmptyPluginName = errors.New("plugin name cannot be empty")

	// ErrDuplicatePlugin is returned when a name is already registered.
	ErrDuplicatePlugin = errors.New("plugin already registered")

	// ErrPluginNotFound is returned when no plugin matches the name.
	ErrPluginNotFound = errors.New("plugin not found")

	// ErrNilPluginData is returned when restoring nil data.
	ErrNilPluginData = errors.New("plugin data cannot be nil")

	// ErrInvalidPluginData is returned when data fails plugin validation.
	ErrInvalidPluginData = errors.New("invalid plugin data")
)
