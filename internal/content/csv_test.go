package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCSV(t *testing.T) {
	data := []byte("\xEF\xBB\xBFid,type,question,choiceA,choiceB,answer,title\n" +
		"1,mcq,1+1=?,1,2,B,小一數學\n" +
		"2,,The sky is blue,,,T,\n")

	pack, err := DecodeCSV("math/grade1/demo", data)
	require.NoError(t, err)

	assert.Equal(t, "小一數學", pack.Title)
	require.Len(t, pack.Rows, 2)

	assert.Equal(t, "mcq", pack.Rows[0]["type"])
	assert.Equal(t, "1+1=?", pack.Rows[0]["question"])
	assert.Equal(t, "B", pack.Rows[0]["answer"])
	_, hasTitle := pack.Rows[0]["title"]
	assert.False(t, hasTitle, "title column lifted out of rows")

	assert.Equal(t, "T", pack.Rows[1]["answer"])
	_, hasType := pack.Rows[1]["type"]
	assert.False(t, hasType, "empty cells omitted")
}

func TestDecodeCSV_HeaderAliases(t *testing.T) {
	data := []byte("kind,題目,A,B,答案,解析\n" +
		"mcq,幾多隻腳?,2,4,B,貓有四隻腳\n")

	pack, err := DecodeCSV("chinese/grade1/demo", data)
	require.NoError(t, err)
	require.Len(t, pack.Rows, 1)

	row := pack.Rows[0]
	assert.Equal(t, "mcq", row["type"])
	assert.Equal(t, "幾多隻腳?", row["question"])
	assert.Equal(t, "2", row["choiceA"])
	assert.Equal(t, "4", row["choiceB"])
	assert.Equal(t, "B", row["answer"])
	assert.Equal(t, "貓有四隻腳", row["explain"])
}

func TestDecodeCSV_RaggedAndEmpty(t *testing.T) {
	pack, err := DecodeCSV("x", []byte(""))
	require.NoError(t, err)
	assert.Empty(t, pack.Rows)

	// rows shorter or longer than the header must not error
	data := []byte("id,question,answer\n1,short\n2,ok,T,extra\n")
	pack, err = DecodeCSV("x", data)
	require.NoError(t, err)
	require.Len(t, pack.Rows, 2)
	assert.Equal(t, "T", pack.Rows[1]["answer"])
}

func TestDecodeCSV_PairsColumn(t *testing.T) {
	data := []byte(`id,question,pairs
1,pair up,"[{""left"":""a"",""right"":""a""}]"
`)
	pack, err := DecodeCSV("x", data)
	require.NoError(t, err)
	require.Len(t, pack.Rows, 1)
	assert.Equal(t, `[{"left":"a","right":"a"}]`, pack.Rows[0]["pairs"])
}
