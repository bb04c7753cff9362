// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/critica/internal/platform/sec"
)

/*
TestConfirmationCode_RoundTrip checks generation, hashing and verification.
*/
func TestConfirmationCode_RoundTrip(t *testing.T) {
	code, err := sec.GenerateConfirmationCode(20)
	require.NoError(t, err)
	require.NotEmpty(t, code)

	hash, err := sec.HashConfirmationCode(code)
	require.NoError(t, err)
	assert.NotEqual(t, code, hash)

	assert.True(t, sec.CheckConfirmationCode(code, hash))
	assert.False(t, sec.CheckConfirmationCode("wrong-code", hash))
}

/*
TestGenerateConfirmationCode_Unique checks that consecutive codes differ.
*/
func TestGenerateConfirmationCode_Unique(t *testing.T) {
	first, err := sec.GenerateConfirmationCode(20)
	require.NoError(t, err)

	second, err := sec.GenerateConfirmationCode(20)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
