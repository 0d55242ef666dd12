// Copyright 2025 The AVCF Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package avcf

import (
	"sync"

	"sigs.k8s.io/release-utils/version"
)

// ToolName is the fixed tool identity stamped into every metadata record.
const ToolName = "avcf-sign"

// fallbackVersion is used for builds without ldflags-injected version info.
const fallbackVersion = "0.1.0"

var toolVersion = sync.OnceValue(func() string {
	v := version.GetVersionInfo().GitVersion
	if v == "" || v == "unknown" || v == "devel" {
		return fallbackVersion
	}
	return v
})

// ToolVersion returns the build-time tool version. The value is resolved
// once per process and never changes afterwards.
func ToolVersion() string {
	return toolVersion()
}
