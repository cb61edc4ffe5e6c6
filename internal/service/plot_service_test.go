package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProjectRepo struct {
	projects map[uuid.UUID]*model.Project
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[uuid.UUID]*model.Project)}
}

func (r *stubProjectRepo) Create(_ context.Context, p *model.Project) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.projects[p.ID] = p
	return nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (r *stubProjectRepo) List(_ context.Context) ([]model.Project, error) {
	var out []model.Project
	for _, p := range r.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProjectRepo) Update(_ context.Context, p *model.Project) error {
	r.projects[p.ID] = p
	return nil
}

func newPlotServiceFixture(t *testing.T) (PlotService, *stubPlotRepo, *model.Project) {
	t.Helper()
	plots := newStubPlotRepo()
	projects := newStubProjectRepo()
	project := &model.Project{Name: "Green Valley"}
	require.NoError(t, projects.Create(context.Background(), project))
	return NewPlotService(plots, projects), plots, project
}

func savePlotReq(project *model.Project, number string) dto.SavePlotRequest {
	return dto.SavePlotRequest{
		PlotNumber:  number,
		ProjectID:   project.ID.String(),
		AreaUnit:    "sqyd",
		PlotArea:    dec("166.67"),
		RatePerUnit: dec("5999"),
	}
}

func TestPlotCreateDerivesTotalValue(t *testing.T) {
	svc, _, project := newPlotServiceFixture(t)

	resp, err := svc.Create(context.Background(), savePlotReq(project, "A-101"), []string{"sales"})
	require.NoError(t, err)
	// 166.67 × 5999 = 999,853.33.
	assert.True(t, resp.TotalValue.Equal(dec("999853.33")), "got %s", resp.TotalValue)
	assert.Equal(t, model.PlotAvailable, resp.Status)
}

func TestPlotCreateDuplicateNumber(t *testing.T) {
	svc, _, project := newPlotServiceFixture(t)

	_, err := svc.Create(context.Background(), savePlotReq(project, "A-101"), []string{"admin"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), savePlotReq(project, "A-101"), []string{"admin"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestPlotStatusOverrideAdminOnly(t *testing.T) {
	svc, plots, project := newPlotServiceFixture(t)

	created, err := svc.Create(context.Background(), savePlotReq(project, "B-7"), []string{"sales"})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	onHold := model.PlotOnHold
	req := savePlotReq(project, "B-7")
	req.Status = &onHold

	_, err = svc.Update(context.Background(), id, req, []string{"sales"})
	require.ErrorIs(t, err, ErrPermissionDenied)
	assert.Equal(t, model.PlotAvailable, plots.plots[id].Status)

	resp, err := svc.Update(context.Background(), id, req, []string{"admin"})
	require.NoError(t, err)
	assert.Equal(t, model.PlotOnHold, resp.Status)
}

func TestPlotLookup(t *testing.T) {
	svc, plots, project := newPlotServiceFixture(t)

	created, err := svc.Create(context.Background(), savePlotReq(project, "C-12"), []string{"sales"})
	require.NoError(t, err)
	plots.plots[uuid.MustParse(created.ID)].Project = project

	resp, err := svc.Lookup(context.Background(), project.ID, "C-12")
	require.NoError(t, err)
	assert.Equal(t, "C-12", resp.PlotNumber)
	assert.Equal(t, "Green Valley", resp.Project)
	assert.Equal(t, model.PlotAvailable, resp.Status)

	_, err = svc.Lookup(context.Background(), project.ID, "Z-99")
	require.Error(t, err)
}
