package vendors_test

import (
	"testing"

	"bookkeeping-control-backend/internal/services/vendors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainedDirectory(t *testing.T) *vendors.Directory {
	t.Helper()
	dir := vendors.NewDirectory()
	dir.Train([]string{"Kenya Power", "Safaricom PLC", "Total Energies"})
	return dir
}

func TestDirectoryTrainDeduplicates(t *testing.T) {
	dir := vendors.NewDirectory()
	deduped := dir.Train([]string{"Kenya Power", "Kenya Power", "  Safaricom PLC  ", "", "KPLC"})

	assert.Equal(t, []string{"Kenya Power", "Safaricom PLC", "KPLC"}, deduped)
	assert.Equal(t, deduped, dir.Names())
}

func TestDirectoryTrainDiscardsPreviousIndex(t *testing.T) {
	dir := trainedDirectory(t)
	dir.Train([]string{"Acme Hardware", "Nairobi Water", "Jumia Kenya"})

	res := dir.Normalize("Safaricom PLC", vendors.DefaultFuzzyThreshold)
	assert.Nil(t, res.Canonical)
	assert.Equal(t, vendors.MethodNone, res.Method)
}

func TestNormalizeEmptyInput(t *testing.T) {
	dir := trainedDirectory(t)

	for _, raw := range []string{"", "   "} {
		res := dir.Normalize(raw, vendors.DefaultFuzzyThreshold)
		assert.Nil(t, res.Canonical)
		assert.Zero(t, res.Score)
		assert.Equal(t, vendors.MethodNone, res.Method)
	}
}

func TestNormalizeCaseVariant(t *testing.T) {
	dir := trainedDirectory(t)

	res := dir.Normalize("SAFARICOM PLC", vendors.DefaultFuzzyThreshold)
	require.NotNil(t, res.Canonical)
	assert.Equal(t, "Safaricom PLC", *res.Canonical)
	assert.Equal(t, vendors.MethodNN, res.Method)
	assert.GreaterOrEqual(t, res.Score, 0.6)
}

func TestNormalizeFuzzyFallback(t *testing.T) {
	dir := trainedDirectory(t)

	// A single-token query shares one of three index grams with
	// "Safaricom PLC", landing below the nn floor but at a perfect
	// token-set score.
	res := dir.Normalize("SAFARICOM", vendors.DefaultFuzzyThreshold)
	require.NotNil(t, res.Canonical)
	assert.Equal(t, "Safaricom PLC", *res.Canonical)
	assert.Equal(t, vendors.MethodFuzzy, res.Method)
	assert.InDelta(t, 1.0, res.Score, 0.001)
}

func TestNormalizeFuzzyIgnoresCase(t *testing.T) {
	dir := trainedDirectory(t)

	// Token-set scoring must fold case on both sides; an upper-case
	// subset of "Total Energies" still scores a perfect token match.
	res := dir.Normalize("TOTAL", vendors.DefaultFuzzyThreshold)
	require.NotNil(t, res.Canonical)
	assert.Equal(t, "Total Energies", *res.Canonical)
	assert.Equal(t, vendors.MethodFuzzy, res.Method)
	assert.InDelta(t, 1.0, res.Score, 0.001)
}

func TestNormalizeUnrelatedName(t *testing.T) {
	dir := trainedDirectory(t)

	res := dir.Normalize("Totally Unrelated Name XYZ", vendors.DefaultFuzzyThreshold)
	assert.Nil(t, res.Canonical)
	assert.Zero(t, res.Score)
	assert.Equal(t, vendors.MethodNone, res.Method)
}

func TestNormalizeThresholdRespected(t *testing.T) {
	dir := trainedDirectory(t)

	res := dir.Normalize("SAFARICOM", 101)
	assert.Nil(t, res.Canonical)
	assert.Equal(t, vendors.MethodNone, res.Method)
}

func TestNormalizeUntrainedDirectory(t *testing.T) {
	dir := vendors.NewDirectory()

	res := dir.Normalize("Kenya Power", vendors.DefaultFuzzyThreshold)
	assert.Nil(t, res.Canonical)
	assert.Equal(t, vendors.MethodNone, res.Method)
}
