package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarNameBasics(t *testing.T) {
	require.Equal(t, "entityId", VarName("Entity ID"))
	require.Equal(t, "typ", VarName("type"))
	require.Equal(t, "_1stPerson", VarName("1st Person"))
}

func TestClassNameBasics(t *testing.T) {
	require.Equal(t, "LoginSuccess", ClassName("login success"))
	require.Equal(t, "Particle", ClassName("Particle (explosion)"))
}

func TestConstNameBasics(t *testing.T) {
	require.Equal(t, "HAS_MAYBE", ConstName("has_maybe"))
}

func TestPluralize(t *testing.T) {
	cases := map[string]string{
		"entry":     "entries",
		"flash":     "flashes",
		"particles": "particles",
		"item":      "items",
	}
	for in, want := range cases {
		assert.Equal(t, want, Pluralize(in), in)
	}
}

func TestTypeNameBasics(t *testing.T) {
	require.Equal(t, "Array[Particle]", TypeName("array_of_particles"))
	require.Equal(t, "Option[Varint]", TypeName("optional_varint"))
	require.Equal(t, "Array[Int]", TypeName("intarray"))
	require.Equal(t, "Optional[Any]", TypeName("optional,_varies"))
}

func TestExtractTypeAndLength(t *testing.T) {
	typ, max := ExtractTypeAndLength("String (32767)")
	require.Equal(t, "String", typ)
	require.NotNil(t, max)
	require.Equal(t, 32767, *max)

	typ2, max2 := ExtractTypeAndLength("Varint")
	require.Equal(t, "Varint", typ2)
	require.Nil(t, max2)
}

// TestIdentifierClosure checks that normalizing an already normalized
// identifier is a no-op.
func TestIdentifierClosure(t *testing.T) {
	samples := []string{"Entity ID", "has_maybe", "type", "Particle (explosion)", "1st Person"}
	for _, s := range samples {
		v := VarName(s)
		require.Equal(t, v, VarName(v), "varname not idempotent for %q", s)

		c := ClassName(s)
		require.Equal(t, c, ClassName(c), "classname not idempotent for %q", s)

		k := ConstName(s)
		require.Equal(t, k, ConstName(k), "constname not idempotent for %q", s)
	}
}

func TestTypeNameIdempotent(t *testing.T) {
	samples := []string{"array_of_particles", "optional_varint", "intarray", "Varint", "Boolean"}
	for _, s := range samples {
		out := TypeName(s)
		require.Equal(t, out, TypeName(out), "typename not idempotent for %q", s)
	}
}
