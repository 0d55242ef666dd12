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

package cli

import (
	"errors"

	"github.com/peterkelly70/acvf/pkg/avcf"
)

// Exit codes of the CLI: 0 success / VALID verification, 1 domain error or
// non-VALID verification, 2 unexpected error.
const (
	ExitOK         = 0
	ExitDomain     = 1
	ExitUnexpected = 2
)

// verdictError marks a completed verification whose verdict is not VALID.
// The structured result has already been printed; only the exit code and a
// one-line summary remain.
type verdictError struct {
	status avcf.Status
}

func (e *verdictError) Error() string {
	return "verification status: " + string(e.status)
}

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ve *verdictError
	if errors.As(err, &ve) {
		return ExitDomain
	}
	if avcf.IsEngineError(err) {
		return ExitDomain
	}
	return ExitUnexpected
}
