package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mohsen1/tsz/internal/source"
)

// Label returns a human-readable rendering of id, the way the checker
// quotes types inside diagnostic messages (spec.md §6.2).
func Label(in *Interner, id TypeID) string {
	return labelDepth(in, id, 0)
}

func labelDepth(in *Interner, id TypeID, depth int) string {
	if id == NoTypeID {
		return "?"
	}
	if depth > 12 {
		return "..."
	}
	if in == nil {
		return "?"
	}
	tt, ok := in.Lookup(id)
	if !ok {
		return "?"
	}
	switch tt.Kind {
	case KindAny:
		return "any"
	case KindUnknown:
		return "unknown"
	case KindNever:
		return "never"
	case KindVoid:
		return "void"
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindBigInt:
		return "bigint"
	case KindSymbol:
		return "symbol"
	case KindObject:
		return "object"
	case KindLiteralString:
		s, _ := in.LiteralStringValue(id)
		text, _ := in.Strings.Lookup(s)
		return strconv.Quote(text)
	case KindLiteralNumber:
		n, _ := in.LiteralNumberValue(id)
		return strconv.FormatFloat(n, 'g', -1, 64)
	case KindLiteralBoolean:
		b, _ := in.LiteralBooleanValue(id)
		return strconv.FormatBool(b)
	case KindLiteralBigInt:
		s, _ := in.LiteralBigIntValue(id)
		return s + "n"
	case KindUniqueSymbol:
		return "unique symbol"
	case KindArray:
		elem, _ := in.ArrayElem(id)
		return labelDepth(in, elem, depth+1) + "[]"
	case KindReadonlyArray:
		elem, _ := in.ArrayElem(id)
		return "readonly " + labelDepth(in, elem, depth+1) + "[]"
	case KindTuple:
		return labelTuple(in, id, depth)
	case KindObjectShape:
		return labelObject(in, id, depth)
	case KindFunction:
		return labelFunction(in, id, depth)
	case KindUnion:
		return labelJoin(in, id, depth, unionMembers(in, id), " | ")
	case KindIntersection:
		return labelJoin(in, id, depth, intersectionMembers(in, id), " & ")
	case KindTypeParameter:
		info, ok := in.TypeParameterInfo(id)
		if !ok {
			return "T"
		}
		return lookupNameFallback(in.Strings, info.Name)
	case KindApplication:
		return labelApplication(in, id, depth)
	case KindRef:
		return fmt.Sprintf("<ref %d>", id)
	case KindLazy:
		if target, ok := in.LazyTarget(id); ok {
			return labelDepth(in, target, depth+1)
		}
		return "<unresolved>"
	case KindIndexAccess:
		info, ok := in.IndexAccessInfo(id)
		if !ok {
			return "?"
		}
		return labelDepth(in, info.Object, depth+1) + "[" + labelDepth(in, info.Index, depth+1) + "]"
	case KindKeyOf:
		info, ok := in.KeyOfInfo(id)
		if !ok {
			return "?"
		}
		return "keyof " + labelDepth(in, info.Object, depth+1)
	case KindConditional:
		info, ok := in.ConditionalInfo(id)
		if !ok {
			return "?"
		}
		return fmt.Sprintf("%s extends %s ? %s : %s",
			labelDepth(in, info.Check, depth+1), labelDepth(in, info.Extends, depth+1),
			labelDepth(in, info.True, depth+1), labelDepth(in, info.False, depth+1))
	case KindTemplateLiteral:
		return labelTemplate(in, id, depth)
	case KindMapped:
		return "{ [K in ...]: ... }"
	case KindTypeQuery:
		return "typeof <symbol>"
	case KindThisType:
		return "this"
	case KindInfer:
		info, ok := in.InferInfo(id)
		if !ok {
			return "infer T"
		}
		name, _ := in.Strings.Lookup(source.StringID(info.Name))
		return "infer " + name
	default:
		return "?"
	}
}

func labelTuple(in *Interner, id TypeID, depth int) string {
	info, ok := in.TupleInfo(id)
	if !ok {
		return "[?]"
	}
	parts := make([]string, len(info.Elems))
	for i, e := range info.Elems {
		s := labelDepth(in, e.Type, depth+1)
		if e.Rest {
			s = "..." + s
		} else if e.Optional {
			s += "?"
		}
		parts[i] = s
	}
	body := "[" + strings.Join(parts, ", ") + "]"
	if info.Readonly {
		return "readonly " + body
	}
	return body
}

func labelObject(in *Interner, id TypeID, depth int) string {
	info, ok := in.ObjectShapeInfo(id)
	if !ok {
		return "{}"
	}
	parts := make([]string, 0, len(info.Properties)+2)
	for _, p := range info.Properties {
		name := lookupNameFallback(in.Strings, p.Name)
		q := ""
		if p.Readonly {
			q = "readonly "
		}
		opt := ""
		if p.Optional {
			opt = "?"
		}
		parts = append(parts, fmt.Sprintf("%s%s%s: %s", q, name, opt, labelDepth(in, p.Type, depth+1)))
	}
	if info.StringIndex != nil {
		parts = append(parts, "[key: string]: "+labelDepth(in, info.StringIndex.ValueType, depth+1))
	}
	if info.NumberIndex != nil {
		parts = append(parts, "[key: number]: "+labelDepth(in, info.NumberIndex.ValueType, depth+1))
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

func labelFunction(in *Interner, id TypeID, depth int) string {
	info, ok := in.FunctionInfo(id)
	if !ok {
		return "(?) => ?"
	}
	params := make([]string, len(info.Params))
	for i, p := range info.Params {
		name := lookupNameFallback(in.Strings, p.Name)
		opt := ""
		if p.Optional {
			opt = "?"
		}
		rest := ""
		if p.Rest {
			rest = "..."
		}
		params[i] = fmt.Sprintf("%s%s%s: %s", rest, name, opt, labelDepth(in, p.Type, depth+1))
	}
	return "(" + strings.Join(params, ", ") + ") => " + labelDepth(in, info.Return, depth+1)
}

func labelApplication(in *Interner, id TypeID, depth int) string {
	info, ok := in.ApplicationInfo(id)
	if !ok {
		return "?"
	}
	args := make([]string, len(info.Args))
	for i, a := range info.Args {
		args[i] = labelDepth(in, a, depth+1)
	}
	return labelDepth(in, info.Target, depth+1) + "<" + strings.Join(args, ", ") + ">"
}

func labelTemplate(in *Interner, id TypeID, depth int) string {
	info, ok := in.TemplateLiteralInfo(id)
	if !ok {
		return "`?`"
	}
	var b strings.Builder
	b.WriteByte('`')
	for _, seg := range info.Segments {
		b.WriteString(seg.Literal)
		if seg.Placeholder != NoTypeID {
			b.WriteString("${" + labelDepth(in, seg.Placeholder, depth+1) + "}")
		}
	}
	b.WriteByte('`')
	return b.String()
}

func labelJoin(in *Interner, id TypeID, depth int, members []TypeID, sep string) string {
	if len(members) == 0 {
		return "?"
	}
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = labelDepth(in, m, depth+1)
	}
	return strings.Join(parts, sep)
}

func unionMembers(in *Interner, id TypeID) []TypeID {
	info, ok := in.UnionInfo(id)
	if !ok {
		return nil
	}
	return info.Members
}

func intersectionMembers(in *Interner, id TypeID) []TypeID {
	info, ok := in.IntersectionInfo(id)
	if !ok {
		return nil
	}
	return info.Members
}

func lookupNameFallback(strings *source.Interner, id source.StringID) string {
	if strings == nil {
		return "?"
	}
	name, ok := strings.Lookup(id)
	if !ok || name == "" {
		return "?"
	}
	return name
}
