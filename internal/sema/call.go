package sema

import (
	"strconv"
	"strings"

	"fxsema/internal/diag"
	"fxsema/internal/intrinsics"
	"fxsema/internal/semtype"
	"fxsema/internal/symbols"
	"fxsema/internal/syntax"
)

// call dispatches to intrinsic resolution, then user functions, then
// type-constructor validation.
func (c *checker) call(n *syntax.Node, fn symbols.SymbolID) semtype.SemType {
	callee := n.Child("callee")
	var calleeName string
	argTypes := make([]semtype.SemType, 0, len(n.Children))

	if callee != nil {
		switch callee.Kind {
		case syntax.NodeIdentifier:
			calleeName = strings.TrimSpace(c.doc.Text(callee.Span))
			c.calleeIdentifier(callee, fn, calleeName)
		case syntax.NodeMemberExpr:
			// Method-style call: the receiver becomes the first
			// argument and the callee is the member name.
			if object := callee.Child("object"); object != nil {
				argTypes = append(argTypes, c.infer(object, fn, false))
			}
			if member := callee.Child("member"); member != nil {
				calleeName = strings.TrimSpace(c.doc.Text(member.Span))
			}
			c.setType(callee.ID, semtype.Invalid())
		default:
			c.infer(callee, fn, false)
		}
	}

	for i := range n.Children {
		if n.Children[i].Role == "arg" {
			argTypes = append(argTypes, c.infer(n.Children[i].Node, fn, false))
		}
	}

	if calleeName == "" {
		return semtype.Invalid()
	}

	ret, outcome := intrinsics.Resolve(calleeName, argTypes)
	switch outcome {
	case intrinsics.OutcomeExempt:
		c.result.Callees[n.ID] = CalleeRef{Name: calleeName, Kind: "binding"}
		return semtype.Void()
	case intrinsics.OutcomeMatched:
		c.result.Callees[n.ID] = CalleeRef{Name: calleeName, Kind: "intrinsic"}
		return ret
	case intrinsics.OutcomeDeclined:
		c.result.Callees[n.ID] = CalleeRef{Name: calleeName, Kind: "intrinsic"}
		return semtype.Invalid()
	case intrinsics.OutcomeMismatch:
		c.result.Callees[n.ID] = CalleeRef{Name: calleeName, Kind: "intrinsic"}
		c.bag.Report(diag.TypeIntrinsicMismatch,
			"no overload of '"+calleeName+"' accepts ("+typeList(argTypes)+")", n.Span)
		return semtype.Invalid()
	}

	if fnID := c.table.FindFunction(calleeName); fnID.IsValid() {
		return c.userCall(n, fnID, calleeName, argTypes)
	}

	if target := semtype.Parse(calleeName); isConstructible(target) {
		c.result.Callees[n.ID] = CalleeRef{Name: calleeName, Kind: "constructor"}
		c.checkConstructor(n, target, argTypes)
		return target
	}

	if !anyInvalid(argTypes) {
		c.bag.Report(diag.TypeUnknownCallee, "unknown function '"+calleeName+"'", n.Span)
	}
	return semtype.Invalid()
}

// calleeIdentifier types the callee node itself without emitting an
// unknown-identifier diagnostic; the call expression owns reporting.
func (c *checker) calleeIdentifier(callee *syntax.Node, fn symbols.SymbolID, name string) {
	if fnID := c.table.FindFunction(name); fnID.IsValid() {
		c.result.Refs[callee.ID] = fnID
		c.setType(callee.ID, c.table.Get(fnID).Type)
		return
	}
	c.setType(callee.ID, semtype.Invalid())
}

func (c *checker) userCall(n *syntax.Node, fnID symbols.SymbolID, name string, argTypes []semtype.SemType) semtype.SemType {
	sym := c.table.Get(fnID)
	c.result.Refs[n.ID] = fnID
	c.result.Callees[n.ID] = CalleeRef{Name: sym.Name, Kind: "function"}

	params := sym.Type.Params
	if len(argTypes) != len(params) {
		c.bag.Report(diag.TypeCallMismatch,
			"'"+name+"' expects "+strconv.Itoa(len(params))+" argument(s), got "+
				strconv.Itoa(len(argTypes)), n.Span)
	} else {
		for i, arg := range argTypes {
			if !arg.IsValid() || !params[i].IsValid() {
				continue
			}
			if params[i].Kind == semtype.KindResource {
				// Opaque and struct parameter types are not checked
				// positionally; member-level checks cover structs.
				continue
			}
			if !c.policy.CanPromote(arg, params[i]) {
				c.bag.Report(diag.TypeCallMismatch,
					"argument "+strconv.Itoa(i+1)+" of '"+name+"': cannot convert '"+
						arg.String()+"' to '"+params[i].String()+"'", n.Span)
				break
			}
		}
	}
	if sym.Type.Return != nil {
		return *sym.Type.Return
	}
	return semtype.Void()
}

func isConstructible(t semtype.SemType) bool {
	switch t.Kind {
	case semtype.KindScalar, semtype.KindVector, semtype.KindMatrix:
		return !t.IsVoid()
	}
	return false
}

// checkConstructor enforces component-count conservation: supplying
// more components than the target holds is an error; supplying fewer
// is tolerated only through the single wider-vector truncation idiom.
func (c *checker) checkConstructor(n *syntax.Node, target semtype.SemType, argTypes []semtype.SemType) {
	if anyInvalid(argTypes) || len(argTypes) == 0 {
		return
	}
	need := target.ComponentCount()
	total := 0
	for _, arg := range argTypes {
		total += arg.ComponentCount()
	}
	if total == need {
		return
	}
	if len(argTypes) == 1 && argTypes[0].Kind != semtype.KindScalar &&
		argTypes[0].ComponentCount() >= need {
		return // truncating a wider vector/matrix into the target
	}
	c.bag.Report(diag.TypeConstructorMismatch,
		"'"+target.String()+"' requires "+strconv.Itoa(need)+" component(s), got "+
			strconv.Itoa(total), n.Span)
}

func anyInvalid(types []semtype.SemType) bool {
	for _, t := range types {
		if !t.IsValid() {
			return true
		}
	}
	return false
}

func typeList(types []semtype.SemType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		if t.IsValid() {
			parts[i] = t.String()
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}
