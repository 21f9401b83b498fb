package cc

import (
	"strconv"
	"strings"

	"github.com/gitrdm/ccsmt/pkg/ast"
	"github.com/gitrdm/ccsmt/pkg/backtrack"
)

// sigKey computes the canonical signature string of an application: its
// head symbol together with the *current roots* of its arguments. Two
// applications sharing a sigKey are congruent right now, even if they were
// not congruent when created.
func sigKey(head ast.ID, args []ast.ID, find func(ast.ID) ast.ID) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(head)))
	for _, a := range args {
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(int(find(a))))
	}
	return b.String()
}

// installSignature makes app the signature table's representative for key,
// recording whatever was there before so backtracking can restore it.
func (cc *CC) installSignature(app ast.ID, key string) {
	prevOwner, hadPrev := cc.sigTable[key]
	prevKey, hadInstalled := cc.installedSig[app]

	cc.sigTable[key] = app
	cc.installedSig[app] = key

	cc.bt.Push(backtrack.ActionFunc(func() {
		if hadPrev {
			cc.sigTable[key] = prevOwner
		} else {
			delete(cc.sigTable, key)
		}
		if hadInstalled {
			cc.installedSig[app] = prevKey
		} else {
			delete(cc.installedSig, app)
		}
	}))
}

func (cc *CC) uninstallSignature(app ast.ID, key string) {
	prevOwner := cc.sigTable[key]
	delete(cc.sigTable, key)
	delete(cc.installedSig, app)
	cc.bt.Push(backtrack.ActionFunc(func() {
		cc.sigTable[key] = prevOwner
		cc.installedSig[app] = key
	}))
}

// rescanSignature recomputes app's signature against current roots. If it
// now collides with a different application, the two are enqueued for
// merging as congruent; otherwise app (re)claims ownership of its
// signature slot. Called both when app is first created and whenever a
// union might have changed one of its arguments' roots.
func (cc *CC) rescanSignature(app ast.ID) {
	head := cc.m.Head(app)
	args := cc.m.Args(app)
	newKey := sigKey(head, args, cc.find)

	oldKey, had := cc.installedSig[app]
	if had && oldKey == newKey {
		return
	}
	if had && cc.sigTable[oldKey] == app {
		cc.uninstallSignature(app, oldKey)
	}

	if q, ok := cc.sigTable[newKey]; ok && q != app {
		cc.pending = append(cc.pending, pendingMerge{t: app, u: q, reason: ReasonCongruence(app, q)})
		return
	}
	cc.installSignature(app, newKey)
}
