// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package qna

import (
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/qna-analyzer/pkg/errors"
)

// Decode decodes raw YAML bytes into a generic value for projection and the
// schema oracle. Generic decoding preserves fields the typed model does not
// know about, so schema rules such as additionalProperties still see them.
//
// yaml.v3 reports duplicate mapping keys through a TypeError after the value
// has already been filled. A duplicate key is a format defect owned by lint,
// not a reason to abandon analysis, so a TypeError yields the decoded
// content with no error. A decode failure proper is a per-file condition:
// callers record it on that file's report and continue with the next file.
func Decode(raw []byte) (any, error) {
	var content any
	if err := yaml.Unmarshal(raw, &content); err != nil {
		if _, ok := err.(*yaml.TypeError); ok {
			return content, nil
		}
		return nil, errors.Wrap(errors.ErrCodeParse, "failed to decode document", err)
	}
	return content, nil
}
