package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const nanoIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func GenerateNanoIDWithPrefix(prefix string, size int) string {
	id := gonanoid.MustGenerate(nanoIDAlphabet, size)
	if prefix == "" {
		return id
	}
	return prefix + "-" + id
}
