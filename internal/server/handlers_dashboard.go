package server

import (
	"net/http"

	"github.com/hevilin/talentsite/internal/db"
	"github.com/hevilin/talentsite/internal/types"
	"golang.org/x/sync/errgroup"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var resp types.DashboardResponse

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		resp.ActiveJobs, err = s.store.CountActiveJobs(ctx)
		return err
	})
	counts := []struct {
		c   db.Collection
		dst *int
	}{
		{db.CollectionJobs, &resp.Jobs},
		{db.CollectionCandidates, &resp.Candidates},
		{db.CollectionMessages, &resp.Messages},
		{db.CollectionClients, &resp.Clients},
		{db.CollectionOnboardings, &resp.Onboardings},
	}
	for _, item := range counts {
		g.Go(func() (err error) {
			*item.dst, err = s.store.Count(ctx, item.c)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.fail(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}
