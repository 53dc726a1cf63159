// Package lang evaluates dice notation such as 3d6+2, {1,2,3}! and
// fish:2d10H.
//
// Evaluation is a three-stage pipeline with no intermediate tree:
//
//   - [Tokenizer] splits source text into typed [Token] values. Each
//     [TokenType] carries a fixed binding precedence.
//   - [Parse] climbs precedences and emits a flat [Program] of stack
//     instructions directly.
//   - [Context] executes a Program against an operand stack of [Value],
//     recording every roll and label in a [Trace].
//
// [Evaluate] runs the whole pipeline over a fresh Context. [Compile] caches
// programs by source text.
//
// # Grammar
//
// Operators, tightest first:
//
//	$          variable prefix            $name
//	( [ {      grouping and lists         (1+2)  [1, 2, 3]  {1 2 3}
//	..         range                      1..6
//	d          dice (prefix means 1d)     3d6  d20  4dF
//	-          subtract, prefix negate    7-2  -3
//	+ ++       add, prefix sum; append    3d6+2  +4d6  [1]++[2]
//	push       keep both operands         3d6 push 2d4
//	h K l k    keep n highest or lowest   4d6h3  4d6k1
//	pop        drop the top value         3d6 push 2d4 pop
//	H L P F    highest, lowest, previous roll; fudge die
//	: as       label; bind a variable     fish:5  2d6 as x
//	== < >     select matching elements   6d6>4
//	!          count elements             6d6>4!
//
// Equal precedence associates left, so 2d6d4 is (2d6)d4. A value following
// a complete expression replaces it while its rolls stay in the trace:
// 2d10H rolls two ten-sided dice and yields the highest.
//
// # Rolls
//
// Rolling Num(n) yields 1 through n, except Num(10) which yields 0 through 9.
// A range rolls over its normalized half-open interval, a word rolls to
// itself and a list rolls to one of its elements.
//
// Randomness comes from the [Rand] given to [WithRand]; use [NewRand] with a
// fixed seed for reproducible results.
package lang
