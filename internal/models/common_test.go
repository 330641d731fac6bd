package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_UnmarshalJSON(t *testing.T) {
	type testCase struct {
		name          string
		input         string
		expectedCount int
		expectedNames []string
		expectNext    bool
		wantErr       bool
	}
	testCases := []testCase{
		{
			name:          "bare_list",
			input:         `[{"id":1,"name":"A"},{"id":2,"name":"B"}]`,
			expectedCount: 2,
			expectedNames: []string{"A", "B"},
		},
		{
			name:          "envelope",
			input:         `{"count":40,"next":"http://x/api/genres/?page=2","previous":null,"results":[{"id":1,"name":"A"}]}`,
			expectedCount: 40,
			expectedNames: []string{"A"},
			expectNext:    true,
		},
		{
			name:          "bare_list_with_whitespace",
			input:         "  \n[]",
			expectedCount: 0,
		},
		{
			name:    "scalar",
			input:   `"nope"`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var page Page[Genre]
			err := json.Unmarshal([]byte(tc.input), &page)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tc.expectedCount, page.Count)
			names := make([]string, 0, len(page.Results))
			for _, g := range page.Results {
				names = append(names, g.Name)
			}
			assert.Equal(t, len(tc.expectedNames), len(names))
			for i := range tc.expectedNames {
				assert.Equal(t, tc.expectedNames[i], names[i])
			}
			assert.Equal(t, tc.expectNext, page.Next != nil)
		})
	}
}
