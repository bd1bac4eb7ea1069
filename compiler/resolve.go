package compiler

import (
	"strings"

	"github.com/sstadick/erg/codeobj"
)

// NameKind is the eight-way tag spec.md §3 "Name kind" describes: a
// storage class paired with an index into the relevant CodeObj table.
type NameKind int

const (
	Fast NameKind = iota
	FastConst
	Global
	GlobalConst
	Deref
	DerefConst
	Local
	LocalConst
)

// Name is a resolved reference: where to load/store it from, and at
// what index.
type Name struct {
	Kind  NameKind
	Index int
}

func fastName(i int) Name { return Name{Fast, i} }
func globalName(i int) Name { return Name{Global, i} }
func derefName(i int) Name { return Name{Deref, i} }
func localName(i int) Name { return Name{Local, i} }

// AccessKind controls both resolution and store-opcode choice for a
// name reference (spec.md §3 "Access kind").
type AccessKind int

const (
	NameAccess AccessKind = iota
	AttrAccess
	MethodAccess
)

// IsLocal reports whether acc is an ordinary name lookup rather than an
// attribute/method access — mirrors erg_compiler's AccessKind::is_local.
func (acc AccessKind) IsLocal() bool { return acc == NameAccess }

// localSearch implements spec.md §4.1 "Local search": classify name
// within the current unit only, without touching enclosing units.
func (g *Generator) localSearch(name string, acc AccessKind) (Name, bool) {
	cur := g.units.Top()
	currentIsToplevel := g.units.IsToplevel(cur)

	if idx := cur.Obj.IndexOfName(name); idx >= 0 {
		if currentIsToplevel || !acc.IsLocal() {
			return localName(idx), true
		}
		return globalName(idx), true
	}
	if idx := cur.Obj.IndexOfVarname(name); idx >= 0 {
		if currentIsToplevel {
			return localName(idx), true
		}
		return fastName(idx), true
	}
	if idx := cur.Obj.IndexOfFreevar(name); idx >= 0 {
		return derefName(idx), true
	}
	return Name{}, false
}

// storeLoadKind mirrors codegen.rs's StoreLoadKind, the coarser
// three/four-way classification rec_search resolves to before
// register_name narrows it back to a full Name.
type storeLoadKind int

const (
	slLocal storeLoadKind = iota
	slGlobal
	slDeref
)

// recSearch implements spec.md §4.1 "Recursive search": walk enclosing
// units from innermost outward (the current unit was already checked by
// localSearch and is skipped here), promoting outer locals to cells as
// needed.
func (g *Generator) recSearch(name string) storeLoadKind {
	found := slGlobal
	resolved := false
	g.units.Enclosing(func(u *codeobj.CodeUnit, isToplevel bool) bool {
		if u.Obj.IndexOfCellvar(name) >= 0 {
			found, resolved = slDeref, true
			return false
		}
		if idx := u.Obj.IndexOfVarname(name); idx >= 0 {
			if isToplevel {
				found, resolved = slGlobal, true
				return false
			}
			// promote: the outer-scope variable becomes a cell.
			cellvarName := u.Obj.Varnames[idx]
			u.Obj.Cellvars = append(u.Obj.Cellvars, cellvarName)
			found, resolved = slDeref, true
			return false
		}
		if isToplevel && u.Obj.IndexOfName(name) >= 0 {
			found, resolved = slGlobal, true
			return false
		}
		return true
	})
	if !resolved {
		// unresolved forward reference: treated as a global (spec.md
		// §4.1 "Any remaining unresolved reference is treated as a
		// forward global").
		return slGlobal
	}
	return found
}

// registerName implements spec.md §4.1 "Registration" for a plain name
// reference: escape sigils/remap builtins, resolve via recSearch, and
// append to the right table of the current unit.
func (g *Generator) registerName(rawName string) Name {
	cur := g.units.Top()
	currentIsToplevel := g.units.IsToplevel(cur)
	name := g.escapeName(rawName)

	switch g.recSearch(name) {
	case slLocal, slGlobal:
		st := slGlobal
		if currentIsToplevel {
			st = slLocal
		}
		cur.Obj.Names = append(cur.Obj.Names, name)
		idx := len(cur.Obj.Names) - 1
		if st == slLocal {
			return localName(idx)
		}
		return globalName(idx)
	case slDeref:
		cur.Obj.Freevars = append(cur.Obj.Freevars, name)
		return derefName(len(cur.Obj.Freevars) - 1)
	}
	panic("unreachable storeLoadKind")
}

// registerAttr and registerMethod implement spec.md §4.1's attribute
// registration: take only the final dotted segment, apply the
// class-specific remap table, and always register into Names as a
// Local reference (attribute/method access is never fast/global/deref).
func (g *Generator) registerAttr(class, uniqObjName, rawName string) Name {
	return g.registerAttrLike(class, uniqObjName, rawName)
}

func (g *Generator) registerMethod(class, uniqObjName, rawName string) Name {
	return g.registerAttrLike(class, uniqObjName, rawName)
}

func (g *Generator) registerAttrLike(class, uniqObjName, rawName string) Name {
	cur := g.units.Top()
	last := rawName
	if idx := strings.LastIndex(rawName, "."); idx >= 0 {
		last = rawName[idx+1:]
	}
	name := g.escapeAttr(class, uniqObjName, last)
	cur.Obj.Names = append(cur.Obj.Names, name)
	return localName(len(cur.Obj.Names) - 1)
}
