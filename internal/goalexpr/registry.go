package goalexpr

// The five overload families, attempted in a fixed order by
// compileInner: engine predicates, then line predicates, then cell
// predicates, and for zero-argument calls cell comparators and
// traversals. Each constructor returns nil when the name or the
// argument shapes do not match, which sends resolution on to the next
// family.

func goalNode(op string, args []*node) *node {
	switch op {
	case "all", "none", "any":
		if match(args, kindTraversal, kindLinePredicate) {
			return mk(kindGoalPredicate, op, args)
		}
	case "ratio":
		if match(args, kindTraversal, kindLinePredicate, kindDouble, kindDouble) {
			return mk(kindGoalPredicate, op, args)
		}
	case "sequence":
		if match(args, kindTraversal, kindLinePredicate, kindInt) {
			return mk(kindGoalPredicate, op, args)
		}
	case "checker":
		if match(args, kindTraversal, kindCellPredicate, kindCellPredicate) {
			return mk(kindGoalPredicate, op, args)
		}
	case "filled", "entropy":
		if match(args, kindDouble, kindDouble) {
			return mk(kindGoalPredicate, op, args)
		}
	case "length", "radius":
		if match(args, kindInt, kindInt) {
			return mk(kindGoalPredicate, op, args)
		}
	case "density-index", "densest-index", "sparsest-index",
		"entropy-index", "most-entropic-index", "least-entropic-index",
		"eliminate-index", "reduction-index":
		if match(args, kindPiece, kindDouble, kindDouble) {
			return mk(kindGoalPredicate, op, args)
		}
	case "is", "matches":
		if match(args, kindEngine) {
			return mk(kindGoalPredicate, op, args)
		}
	case "appears", "lacks":
		if match(args, kindInt) {
			return mk(kindGoalPredicate, op, args)
		}
	case "not":
		if match(args, kindGoalPredicate) {
			return mk(kindGoalPredicate, op, args)
		}
	case "or", "and", "xor":
		if match(args, kindGoalPredicate, kindGoalPredicate) {
			return mk(kindGoalPredicate, op, args)
		}
	case "equals":
		if len(args) == 2 && args[0].kind == args[1].kind {
			switch args[0].kind {
			case kindInt, kindDouble, kindPiece, kindEngine:
				return mk(kindGoalPredicate, op, args)
			}
		}
	}
	return nil
}

func lineNode(op string, args []*node) *node {
	switch op {
	case "false", "true":
		if len(args) == 0 {
			return mk(kindLinePredicate, op, nil)
		}
	case "length":
		if match(args, kindInt, kindInt) {
			return mk(kindLinePredicate, op, args)
		}
	case "any", "none", "all":
		if match(args, kindCellPredicate) {
			return mk(kindLinePredicate, op, args)
		}
	case "ratio":
		if match(args, kindCellPredicate, kindDouble, kindDouble) {
			return mk(kindLinePredicate, op, args)
		}
	case "count":
		if match(args, kindCellPredicate, kindInt, kindInt) {
			return mk(kindLinePredicate, op, args)
		}
	case "sequence":
		if match(args, kindCellPredicate, kindInt) {
			return mk(kindLinePredicate, op, args)
		}
	case "checker":
		if match(args, kindCellPredicate, kindCellPredicate) {
			return mk(kindLinePredicate, op, args)
		}
	case "anypair", "nopair", "allpairs":
		if match(args, kindCellComparator) {
			return mk(kindLinePredicate, op, args)
		}
	case "parts":
		if match(args, kindCellComparator, kindDouble, kindDouble) {
			return mk(kindLinePredicate, op, args)
		}
	case "pairs":
		if match(args, kindCellComparator, kindInt) {
			return mk(kindLinePredicate, op, args)
		}
	case "xor", "or", "and":
		if match(args, kindLinePredicate, kindLinePredicate) {
			return mk(kindLinePredicate, op, args)
		}
	case "not":
		if match(args, kindLinePredicate) {
			return mk(kindLinePredicate, op, args)
		}
	}
	return nil
}

func cellNode(op string, args []*node) *node {
	switch op {
	case "false", "true", "state":
		if len(args) == 0 {
			return mk(kindCellPredicate, op, nil)
		}
	case "is":
		if match(args, kindCell) {
			return mk(kindCellPredicate, op, args)
		}
	case "color":
		if match(args, kindInt) {
			return mk(kindCellPredicate, op, args)
		}
	case "at":
		if match(args, kindInt, kindInt) {
			return mk(kindCellPredicate, op, args)
		}
	case "or", "and":
		if match(args, kindCellPredicate, kindCellPredicate) {
			return mk(kindCellPredicate, op, args)
		}
	case "not":
		if match(args, kindCellPredicate) {
			return mk(kindCellPredicate, op, args)
		}
	}
	return nil
}

func comparatorNode(op string) *node {
	switch op {
	case "overlap", "separate",
		"is", "not", "analogous", "divergent", "color", "varied",
		"i-line", "j-line", "k-line",
		"i-adjacent", "j-adjacent", "k-adjacent", "adjacent",
		"front", "back":
		return mk(kindCellComparator, op, nil)
	}
	return nil
}

func traversalNode(op string) *node {
	switch op {
	case "array", "random", "back",
		"i-line", "j-line", "k-line", "lines",
		"i-random", "j-random", "k-random", "lines-random":
		return mk(kindTraversal, op, nil)
	}
	return nil
}
