package infer

import "github.com/leverr-lang/leverr/internal/types"

// Prelude builds the root type environment with every built-in function's
// scheme seeded in. This resolves the open question of whether a reference
// to a built-in should bypass the undefined-variable check entirely: it
// does not. A built-in is an ordinary polymorphic binding like anything
// introduced by `let`, so using one under a name it doesn't have, or in a
// position its scheme can't unify with, is reported the same way any other
// type error would be.
func Prelude() *types.Env {
	env := types.NewEnv()
	for name, sc := range builtinSchemes() {
		env = env.Extend(name, sc)
	}
	return env
}

func builtinSchemes() map[string]types.Scheme {
	// Negative ids are placeholders private to these literal schemes.
	// types.VarGen.Fresh only ever hands out positive ids, so a negative one
	// can never collide with a variable some inference run allocated.
	a := &types.Var{ID: -1}
	b := &types.Var{ID: -2}

	scheme := func(t types.Type, vars ...int) types.Scheme {
		return types.Scheme{Vars: vars, Type: t}
	}

	return map[string]types.Scheme{
		// map: (a -> b) -> List(a) -> List(b)
		"map": scheme(&types.Func{
			Param: &types.Func{Param: a, Ret: b},
			Ret:   &types.Func{Param: &types.List{Elem: a}, Ret: &types.List{Elem: b}},
		}, -1, -2),

		// filter: (a -> Bool) -> List(a) -> List(a)
		"filter": scheme(&types.Func{
			Param: &types.Func{Param: a, Ret: types.Bool},
			Ret:   &types.Func{Param: &types.List{Elem: a}, Ret: &types.List{Elem: a}},
		}, -1),

		// fold: b -> (b -> a -> b) -> List(a) -> b
		"fold": scheme(&types.Func{
			Param: b,
			Ret: &types.Func{
				Param: &types.Func{Param: b, Ret: &types.Func{Param: a, Ret: b}},
				Ret:   &types.Func{Param: &types.List{Elem: a}, Ret: b},
			},
		}, -1, -2),

		// length: List(a) -> Int
		"length": scheme(&types.Func{Param: &types.List{Elem: a}, Ret: types.Int}, -1),

		// head: List(a) -> Result(a)
		"head": scheme(&types.Func{Param: &types.List{Elem: a}, Ret: &types.Result{Ok: a}}, -1),

		// tail: List(a) -> Result(List(a))
		"tail": scheme(&types.Func{
			Param: &types.List{Elem: a},
			Ret:   &types.Result{Ok: &types.List{Elem: a}},
		}, -1),

		// to_string: a -> String
		"to_string": scheme(&types.Func{Param: a, Ret: types.String}, -1),

		// print: a -> Unit
		"print": scheme(&types.Func{Param: a, Ret: types.Unit}, -1),

		// concat: String -> String -> String
		"concat": scheme(&types.Func{
			Param: types.String,
			Ret:   &types.Func{Param: types.String, Ret: types.String},
		}),

		// each: (a -> b) -> List(a) -> Unit
		"each": scheme(&types.Func{
			Param: &types.Func{Param: a, Ret: b},
			Ret:   &types.Func{Param: &types.List{Elem: a}, Ret: types.Unit},
		}, -1, -2),
	}
}
