package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalSortsKeys(t *testing.T) {
	obj := VObject{
		"zeta":  VInt(1),
		"alpha": VInt(2),
		"mid":   VInt(3),
	}
	out, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"mid":3,"zeta":1}`, string(out))
}

func TestMarshalCanonicalNoHTMLEscaping(t *testing.T) {
	out, err := MarshalCanonical(VObject{"stmt": VString("AB < CD & CD > EF")})
	require.NoError(t, err)
	assert.Equal(t, `{"stmt":"AB < CD & CD > EF"}`, string(out))
}

func TestMarshalCanonicalControlCharacters(t *testing.T) {
	out, err := MarshalCanonical(VString("a\nb\tc\x01d"))
	require.NoError(t, err)
	assert.Equal(t, `"a\nb\tc\u0001d"`, string(out))
}

func TestMarshalCanonicalLineSeparatorsStayLiteral(t *testing.T) {
	out, err := MarshalCanonical(VString("a b c"))
	require.NoError(t, err)
	assert.Equal(t, "\"a b c\"", string(out))
}

func TestMarshalCanonicalNFCNormalization(t *testing.T) {
	// e + combining acute normalizes to the precomposed form.
	decomposed := VString("é")
	precomposed := VString("é")

	a, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	b, err := MarshalCanonical(precomposed)
	require.NoError(t, err)
	assert.Equal(t, string(b), string(a))
}

func TestMarshalCanonicalAngleStatement(t *testing.T) {
	// Fact statements carry the angle symbol; it must survive untouched.
	out, err := MarshalCanonical(VObject{"stmt": VString("∠ABC = ∠DEF")})
	require.NoError(t, err)
	assert.Equal(t, `{"stmt":"∠ABC = ∠DEF"}`, string(out))
}

func TestMarshalCanonicalUTF16KeyOrder(t *testing.T) {
	// U+FF01 (FULLWIDTH !) is one UTF-16 unit; U+1D306 is a surrogate
	// pair starting 0xD834. UTF-16 order puts 0xD834 before 0xFF01,
	// UTF-8 byte order is the reverse.
	obj := VObject{
		"！":          VInt(1),
		"\U0001D306": VInt(2),
	}
	out, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, "{\"\U0001D306\":2,\"！\":1}", string(out))
}

func TestMarshalCanonicalNilValue(t *testing.T) {
	_, err := MarshalCanonical(VObject{"x": nil})
	assert.Error(t, err)
}

func TestUnmarshalCanonicalRoundTrip(t *testing.T) {
	obj := VObject{
		"kind":   VString(kindMacro),
		"propId": VString("I.1"),
		"inputs": VArray{VString("A"), VString("B")},
		"seq":    VInt(3),
		"ok":     VBool(true),
	}
	data, err := MarshalCanonical(obj)
	require.NoError(t, err)

	back, err := UnmarshalCanonical(data)
	require.NoError(t, err)
	assert.Equal(t, Value(obj), back)
}

func TestUnmarshalCanonicalRejectsFloatsAndNull(t *testing.T) {
	_, err := UnmarshalCanonical([]byte(`{"x":1.5}`))
	assert.Error(t, err)

	_, err = UnmarshalCanonical([]byte(`{"x":null}`))
	assert.Error(t, err)
}

func TestActionIDDeterministic(t *testing.T) {
	payload := VObject{"kind": VString(kindCompass), "centerId": VString("A"), "radiusPtId": VString("B")}

	a := MustActionID("session-1", 1, payload)
	b := MustActionID("session-1", 1, payload)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	// Any input change changes the ID.
	assert.NotEqual(t, a, MustActionID("session-2", 1, payload))
	assert.NotEqual(t, a, MustActionID("session-1", 2, payload))
	assert.NotEqual(t, a, MustActionID("session-1", 1,
		VObject{"kind": VString(kindCompass), "centerId": VString("B"), "radiusPtId": VString("A")}))
}

func TestTraceDigestOrderSensitive(t *testing.T) {
	d1, err := TraceDigest([]string{"a", "b"})
	require.NoError(t, err)
	d2, err := TraceDigest([]string{"b", "a"})
	require.NoError(t, err)
	assert.NotEqual(t, d1, d2)

	again, err := TraceDigest([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, d1, again)
}

func TestCoordinateStringsRoundTrip(t *testing.T) {
	// Shortest round-trip formatting survives canonicalization exactly.
	for _, f := range []float64{0, 2, -2, 3.4641016151377544, 1e-9, -0.1} {
		s := formatCoord(f)
		v, err := parseCoord(VString(s), "x")
		require.NoError(t, err)
		assert.Equal(t, f, v)
	}
}
