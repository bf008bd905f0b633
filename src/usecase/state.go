package usecase

import (
	"lifelog/src/store"
)

// invalidate marks the snapshot stale once a mutation has been confirmed
func invalidate(st *store.Store) {
	if st != nil {
		st.Invalidate()
	}
}
