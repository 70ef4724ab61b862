package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNameStatus(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    []FileChange
		wantErr bool
	}{
		{
			name:   "empty output",
			output: "",
			want:   nil,
		},
		{
			name:   "single added file",
			output: "A\tmain.go\n",
			want:   []FileChange{{Status: StatusAdded, Path: "main.go"}},
		},
		{
			name:   "mixed statuses",
			output: "A\tcmd/new.go\nM\tREADME.md\nD\told.txt\n",
			want: []FileChange{
				{Status: StatusAdded, Path: "cmd/new.go"},
				{Status: StatusModified, Path: "README.md"},
				{Status: StatusDeleted, Path: "old.txt"},
			},
		},
		{
			name:   "rename keeps destination path",
			output: "R100\told/name.go\tnew/name.go\n",
			want:   []FileChange{{Status: StatusRenamed, Path: "new/name.go"}},
		},
		{
			name:   "copy keeps destination path",
			output: "C75\tsrc/a.go\tsrc/b.go\n",
			want:   []FileChange{{Status: StatusCopied, Path: "src/b.go"}},
		},
		{
			name:   "path with spaces",
			output: "M\tdocs/user guide.md\n",
			want:   []FileChange{{Status: StatusModified, Path: "docs/user guide.md"}},
		},
		{
			name:    "garbage line",
			output:  "not-a-status-line\n",
			wantErr: true,
		},
		{
			name:    "line starting with a tab",
			output:  "\tno-status.go\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNameStatus(tt.output)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileChangeHelpers(t *testing.T) {
	f := FileChange{Status: StatusAdded, Path: "internal/config/Config.GO"}
	assert.Equal(t, "Config.GO", f.Base())
	assert.Equal(t, "go", f.Ext())

	noExt := FileChange{Status: StatusModified, Path: "Makefile"}
	assert.Equal(t, "Makefile", noExt.Base())
	assert.Equal(t, "", noExt.Ext())
}
