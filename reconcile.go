package main

import (
	"sort"

	"golang.org/x/sync/errgroup"
)

// Diff is the set of actions that makes the bucket mirror the local tree.
type Diff struct {
	Upload []LocalFile
	Delete []RemoteObject
}

func (d Diff) Empty() bool {
	return len(d.Upload) == 0 && len(d.Delete) == 0
}

// Changed lists deletions before uploads, the order invalidations use.
func (d Diff) Changed() []FileRecord {
	changed := make([]FileRecord, 0, len(d.Delete)+len(d.Upload))
	for _, obj := range d.Delete {
		changed = append(changed, obj.FileRecord)
	}
	for _, file := range d.Upload {
		changed = append(changed, file.FileRecord)
	}
	return changed
}

type Reconciler struct {
	Detector ChangeDetector
	// Workers bounds concurrent detector calls. Values below 1 mean one.
	Workers int
}

func NewReconciler(detector ChangeDetector, workers int) *Reconciler {
	return &Reconciler{Detector: detector, Workers: workers}
}

// pendingUpload is an upload candidate. pair is -1 for local-only files,
// otherwise the index of the same-path pair whose decision includes it.
type pendingUpload struct {
	file LocalFile
	pair int
}

type samePath struct {
	local  LocalFile
	remote RemoteObject
}

// Reconcile merges the two manifests from the largest path down. A path
// present on both sides is never deleted; it is uploaded only if the
// detector says so.
func (r *Reconciler) Reconcile(local []LocalFile, remote []RemoteObject) (Diff, error) {
	localSorted := append([]LocalFile(nil), local...)
	remoteSorted := append([]RemoteObject(nil), remote...)
	sort.Slice(localSorted, func(i, j int) bool { return localSorted[i].Path < localSorted[j].Path })
	sort.Slice(remoteSorted, func(i, j int) bool { return remoteSorted[i].Path < remoteSorted[j].Path })

	var (
		diff    Diff
		pending []pendingUpload
		pairs   []samePath
	)

	li, ri := len(localSorted)-1, len(remoteSorted)-1
	for li >= 0 && ri >= 0 {
		l, rm := localSorted[li], remoteSorted[ri]
		switch {
		case l.Path > rm.Path:
			pending = append(pending, pendingUpload{file: l, pair: -1})
			li--
		case rm.Path > l.Path:
			diff.Delete = append(diff.Delete, rm)
			ri--
		default:
			pending = append(pending, pendingUpload{file: l, pair: len(pairs)})
			pairs = append(pairs, samePath{local: l, remote: rm})
			li--
			ri--
		}
	}
	// leftovers keep ascending order
	for i := 0; i <= li; i++ {
		pending = append(pending, pendingUpload{file: localSorted[i], pair: -1})
	}
	diff.Delete = append(diff.Delete, remoteSorted[:ri+1]...)

	replace, detectErr := r.decide(pairs)
	if detectErr != nil {
		return Diff{}, detectErr
	}

	for _, p := range pending {
		if p.pair < 0 || replace[p.pair] {
			diff.Upload = append(diff.Upload, p.file)
		}
	}

	return diff, nil
}

// decide runs the detector for every pair. Each decision lands in its own
// slot so the result does not depend on scheduling.
func (r *Reconciler) decide(pairs []samePath) ([]bool, error) {
	replace := make([]bool, len(pairs))
	if len(pairs) == 0 {
		return replace, nil
	}

	workers := r.Workers
	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range pairs {
		i := i
		g.Go(func() error {
			changed, err := r.Detector.ShouldReplace(pairs[i].local, pairs[i].remote)
			if err != nil {
				return err
			}
			replace[i] = changed
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return replace, nil
}
