package data

import _ "embed"

//go:embed tours.json
var Tours []byte
