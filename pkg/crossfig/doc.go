/*
Package crossfig resolves conditional build configuration ahead of
compilation.

# Overview

crossfig lets a component declare named boolean build conditions
("aliases"), combine them with Not, Any, and All, and select exactly one
of several source blocks through an ordered, fallback-terminated switch.
Everything is resolved in a single deterministic pass: by the time any
consuming code compiles, every alias and every switch arm has collapsed
to a fixed choice.

The engine is pure. It performs no I/O, holds no state between runs, and
never inspects the contents of a block — discarded blocks are opaque
text that simply never reaches the compiler. File emission lives in the
gen package; manifests live in the manifest package.

# Basic Usage

Declare aliases into a scope, then resolve a switch against them:

	scope := crossfig.NewScope()
	_, err := scope.Declare(env,
	    crossfig.AliasDecl{Name: "std", Cond: crossfig.Cfg("feature=std")},
	    crossfig.AliasDecl{Name: "log", Cond: crossfig.Cfg("feature=log")},
	    crossfig.AliasDecl{Name: "verbose", Cond: crossfig.All(
	        crossfig.Ref("std"), crossfig.Ref("log"),
	    )},
	)
	if err != nil {
	    // every failure here is a fatal declaration diagnostic
	}

	sel, err := crossfig.NewSwitch("logging").
	    Case(crossfig.Ref("verbose"), verboseBlock).
	    Case(crossfig.Ref("std"), stdBlock).
	    Default(quietBlock).
	    Resolve(crossfig.NewEvaluator(scope, env))

Aliases resolve where they are declared. An exported alias carries its
resolved kind with it, so consumers observe the defining component's
configuration, never their own.

# Errors

All failures are declaration-time diagnostics. There is no recovery, no
retry, and no silent default: see ErrUnresolvedRef, ErrNameCollision,
ErrEmptyCombinator, ErrNoFallback, and ErrArmAfterFallback.
*/
package crossfig
