package session_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Aghajari/MathParser/session"
)

func nativeConst(v float64) session.NativeFunc {
	return func(_ *session.Session, _ session.Evaluator, _ []session.Arg) (float64, error) {
		return v, nil
	}
}

func TestFunctionRegistryExactArityWins(t *testing.T) {
	r := session.NewFunctionRegistry()
	r.Register(&session.FuncDef{Name: "f", Arity: 2, Native: nativeConst(2)})
	r.Register(&session.FuncDef{Name: "f", Arity: -1, Native: nativeConst(-1)})

	def, err := r.Lookup("f", 2)
	require.NoError(t, err)
	v, _ := def.Native(nil, nil, nil)
	require.Equal(t, 2.0, v)
}

func TestFunctionRegistryFallsBackToVariadic(t *testing.T) {
	r := session.NewFunctionRegistry()
	r.Register(&session.FuncDef{Name: "f", Arity: 2, Native: nativeConst(2)})
	r.Register(&session.FuncDef{Name: "f", Arity: -1, Native: nativeConst(-1)})

	def, err := r.Lookup("f", 5)
	require.NoError(t, err)
	v, _ := def.Native(nil, nil, nil)
	require.Equal(t, -1.0, v)
}

func TestFunctionRegistryArityErrorWithNoVariadic(t *testing.T) {
	r := session.NewFunctionRegistry()
	r.Register(&session.FuncDef{Name: "f", Arity: 2, Native: nativeConst(2)})

	_, err := r.Lookup("f", 3)
	require.Error(t, err)
}

func TestFunctionRegistryUnknownNameUsesFallback(t *testing.T) {
	r := session.NewFunctionRegistry()
	r.Fallback = func(name string, arity int) (*session.FuncDef, bool) {
		if name == "log2" && arity == 1 {
			return &session.FuncDef{Name: name, Arity: 1, Native: nativeConst(7)}, true
		}
		return nil, false
	}
	def, err := r.Lookup("log2", 1)
	require.NoError(t, err)
	v, _ := def.Native(nil, nil, nil)
	require.Equal(t, 7.0, v)

	_, err = r.Lookup("nope", 1)
	require.Error(t, err)
}

func TestFunctionRegistryUserOverloadReplacesPriorUserOnly(t *testing.T) {
	r := session.NewFunctionRegistry()
	r.Register(&session.FuncDef{Name: "gcd", Arity: -1, Native: nativeConst(-1)})
	r.Register(&session.FuncDef{Name: "gcd", Arity: 2, IsUser: true, ParamNames: []string{"x", "y"}, Body: "x"})
	r.Register(&session.FuncDef{Name: "gcd", Arity: 2, IsUser: true, ParamNames: []string{"a", "b"}, Body: "b"})

	def, err := r.Lookup("gcd", 2)
	require.NoError(t, err)
	require.True(t, def.IsUser)
	require.Equal(t, []string{"a", "b"}, def.ParamNames)

	def, err = r.Lookup("gcd", 4)
	require.NoError(t, err)
	require.False(t, def.IsUser)
}

func TestFuncDefParamKindRepeatsLastDeclared(t *testing.T) {
	def := &session.FuncDef{Params: []session.ParamKind{session.Special, session.Numeric}}
	require.Equal(t, session.Special, def.ParamKind(0))
	require.Equal(t, session.Numeric, def.ParamKind(1))
	require.Equal(t, session.Numeric, def.ParamKind(5))
}

func TestFuncDefParamKindDefaultsToNumeric(t *testing.T) {
	def := &session.FuncDef{}
	require.Equal(t, session.Numeric, def.ParamKind(0))
}
