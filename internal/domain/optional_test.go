package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskPatchOptionalFields(t *testing.T) {
	t.Parallel()

	parent := uuid.MustParse("7d444840-9dc0-11d1-b245-5ffdce74fad2")

	tests := []struct {
		name       string
		body       string
		wantSet    bool
		wantDue    *Date
		wantParent *uuid.UUID
	}{
		{name: "absent", body: `{}`},
		{name: "null", body: `{"dueDate":null,"parentTaskId":null}`, wantSet: true},
		{name: "empty string", body: `{"dueDate":"","parentTaskId":""}`, wantSet: true},
		{name: "blank string", body: `{"dueDate":"  ","parentTaskId":" "}`, wantSet: true},
		{
			name:       "values",
			body:       `{"dueDate":"2024-12-20","parentTaskId":"` + parent.String() + `"}`,
			wantSet:    true,
			wantDue:    datePtr(MustParseDate("2024-12-20")),
			wantParent: &parent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var patch TaskPatch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &patch))

			assert.Equal(t, tt.wantSet, patch.DueDate.Set)
			assert.Equal(t, tt.wantSet, patch.ParentTaskID.Set)
			assert.Equal(t, tt.wantDue, patch.DueDate.Value)
			assert.Equal(t, tt.wantParent, patch.ParentTaskID.Value)
		})
	}
}

func TestOptionalRejectsMalformedValues(t *testing.T) {
	t.Parallel()

	var patch TaskPatch
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"dueDate":"tomorrow"}`), &patch), ErrInvalidDate)
	assert.Error(t, json.Unmarshal([]byte(`{"parentTaskId":"nope"}`), &patch))
}

func datePtr(d Date) *Date { return &d }
