// Package query evaluates expr-lang expressions against node trees.
//
// The keys of the document are the variables of an expression, with
// nested nodes exported as maps:
//
//	q, err := query.Compile(`nested.count > 3 && asDateTime(created).Year() == 2023`)
//	v, err := q.Eval(doc)
//
// Besides the expr builtins, expressions may call
//
//	asString(v), asInt(v), asFloat(v), asBool(v)  coerce v like the node getters
//	asDateTime(v)                                 coerce v like GetDateTime
//	lookup(path)                                  value at a key path of the document
//	getenv(name)                                  environment variable
//
// A document key named lookup hides the lookup function.
package query
