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

package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/NVIDIA/qna-analyzer/pkg/errors"
)

type tiktokenCounter struct {
	enc  *tiktoken.Tiktoken
	name string
}

func newTiktokenCounter(encoding string) (Counter, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeTokenizerUnavailable,
			"failed to load BPE encoding", err, map[string]any{"encoding": encoding})
	}
	return tiktokenCounter{
		enc:  enc,
		name: fmt.Sprintf("%s/%s", StrategyTiktoken, encoding),
	}, nil
}

func (c tiktokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(c.enc.Encode(text, nil, nil))
}

func (c tiktokenCounter) Name() string {
	return c.name
}
