/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/qna-analyzer/pkg/header"
)

func TestAddFinding_SeverityHandling(t *testing.T) {
	r := &Report{OK: true, Errors: []string{}, Findings: []Finding{}}

	r.addFinding(Finding{Severity: SeverityWarning, Code: CodeContextTokenRange, Message: "w"})
	assert.True(t, r.OK)
	assert.Empty(t, r.Errors)

	r.addFinding(Finding{Severity: SeverityError, Code: CodeSectionCeiling, Message: "e"})
	assert.False(t, r.OK)
	assert.Equal(t, []string{"e"}, r.Errors)
	assert.Len(t, r.Findings, 2)
}

func TestReportList_OK(t *testing.T) {
	l := NewReportList("test")
	assert.Equal(t, header.KindReportList, l.Kind)
	assert.Equal(t, APIVersion, l.APIVersion)
	assert.Equal(t, "test", l.Metadata["version"])
	assert.True(t, l.OK(), "empty list passes")

	l.Reports = append(l.Reports, &Report{OK: true}, &Report{OK: true})
	assert.True(t, l.OK())

	l.Reports = append(l.Reports, &Report{OK: false})
	assert.False(t, l.OK())
}
