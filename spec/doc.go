/*
Package spec reads grammar definitions.

Two formats are accepted. The text format lists productions and directives:

	#name expr ;
	#start EXPR ;

	EXPR   -> TERM EXPRSI ;
	EXPRSI -> '+' TERM EXPRSI
	        | ε
	        ;
	TERM   -> identifier | number ;

	#token identifier "[A-Za-z_][0-9A-Za-z_]*" ;
	#token number "[0-9]+" ;
	#token '+' "\+" ;
	#skip white_space "[\u{0009}\u{0020}]+" ;

Labels are separated by white spaces. A label enclosed in single quotes may contain
characters that are otherwise meaningful, such as '|' or ';'. An alternative consisting
of nothing or of a single ε derives the empty string. The #terminals directive declares
the terminal alphabet; once it is declared, a label that is neither defined by a
production nor declared is reported as undefined.

The JSON format carries the same information:

	{
	    "name": "expr",
	    "start": "EXPR",
	    "rules": [
	        {"lhs": "EXPR", "alternatives": ["TERM EXPRSI"]},
	        {"lhs": "EXPRSI", "alternatives": ["+ TERM EXPRSI", "ε"]}
	    ],
	    "tokens": [{"terminal": "+", "pattern": "\\+"}]
	}
*/
package spec

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'll1.spec'.
func tracer() tracing.Trace {
	return tracing.Select("ll1.spec")
}
