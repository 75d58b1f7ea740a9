package db

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/suxatcode/klinekart/graph"
)

func TestLoadJSON(t *testing.T) {
	for _, test := range []struct {
		Name   string
		Inp    string
		Exp    []graph.Association
		ExpErr bool
	}{
		{
			Name: "pairs",
			Inp:  `[[{"id":1,"name":"a","img":"a.png"},{"id":2,"name":"b"}]]`,
			Exp:  []graph.Association{{{ID: 1, Name: "a", Img: "a.png"}, {ID: 2, Name: "b"}}},
		},
		{
			Name: "empty list",
			Inp:  `[]`,
			Exp:  []graph.Association{},
		},
		{
			Name: "incomplete pair is dropped",
			Inp:  `[[{"id":1,"name":"a"}],[{"id":1,"name":"a"},{"id":2,"name":"b"}]]`,
			Exp:  []graph.Association{{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}},
		},
		{
			Name:   "not json",
			Inp:    `klinekart`,
			ExpErr: true,
		},
	} {
		t.Run(test.Name, func(t *testing.T) {
			assocs, err := LoadJSON(strings.NewReader(test.Inp))
			assert := assert.New(t)
			if test.ExpErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(test.Exp, assocs)
		})
	}
}

func TestWriteJSON_roundTrip(t *testing.T) {
	assocs := []graph.Association{{{ID: -1, Name: "a"}, {ID: 2, Name: "b", Img: "b.png"}}}
	buf := bytes.Buffer{}
	assert := assert.New(t)
	assert.NoError(WriteJSON(&buf, assocs))
	assert.Contains(buf.String(), `"img": "b.png"`)
	loaded, err := LoadJSON(&buf)
	assert.NoError(err)
	assert.Equal(assocs, loaded)
}

func TestJSONFile_Associations(t *testing.T) {
	content := `[[{"id":1,"name":"a"},{"id":2,"name":"b"}]]`
	exp := []graph.Association{{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}}
	ctx := context.Background()

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "assocs.json")
		assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		assocs, err := JSONFile{Path: path}.Associations(ctx)
		assert.NoError(t, err)
		assert.Equal(t, exp, assocs)
	})
	t.Run("stdin", func(t *testing.T) {
		assocs, err := JSONFile{Path: "-", Stdin: strings.NewReader(content)}.Associations(ctx)
		assert.NoError(t, err)
		assert.Equal(t, exp, assocs)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := JSONFile{Path: filepath.Join(t.TempDir(), "nope.json")}.Associations(ctx)
		assert.Error(t, err)
	})
}
