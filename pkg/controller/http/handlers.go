package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/model/catalog"
	"github.com/aegis-sec/aegis/pkg/domain/types"
	"github.com/aegis-sec/aegis/pkg/repository/firestore"
	"github.com/aegis-sec/aegis/pkg/repository/memory"
	"github.com/aegis-sec/aegis/pkg/usecase"
	"github.com/aegis-sec/aegis/pkg/utils/async"
	"github.com/aegis-sec/aegis/pkg/utils/errutil"
	"github.com/aegis-sec/aegis/pkg/utils/safe"
)

func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) ||
		errors.Is(err, firestore.ErrNotFound) ||
		errors.Is(err, catalog.ErrThreatNotFound)
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if isNotFound(err) {
		status = http.StatusNotFound
	}
	errutil.HandleHTTP(r.Context(), w, err, status)
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, goerr.New("invalid ID in path", goerr.V("param", name), goerr.V("value", raw))
	}
	return id, nil
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(err, "invalid request body")
	}
	return nil
}

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	type templateResponse struct {
		ID          types.TemplateID `json:"id"`
		Version     string           `json:"version"`
		FourFactor  bool             `json:"four_factor"`
		ThreatCount int              `json:"threat_count"`
	}

	catalogs := s.registry.List()
	resp := make([]templateResponse, 0, len(catalogs))
	for _, c := range catalogs {
		resp = append(resp, templateResponse{
			ID:          c.Template,
			Version:     c.Version,
			FourFactor:  c.FourFactor,
			ThreatCount: len(c.Threats),
		})
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) createAssessment(w http.ResponseWriter, r *http.Request) {
	var assessment model.Assessment
	if err := decodeBody(r, &assessment); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	created, err := s.uc.Assessment.Create(r.Context(), &assessment)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	respondJSON(w, r, http.StatusCreated, created)
}

func (s *Server) listAssessments(w http.ResponseWriter, r *http.Request) {
	assessments, err := s.uc.Assessment.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, assessments)
}

func (s *Server) getAssessment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "assessmentID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	assessment, err := s.uc.Assessment.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, assessment)
}

func (s *Server) updateAssessment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "assessmentID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	var assessment model.Assessment
	if err := decodeBody(r, &assessment); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	assessment.ID = id

	updated, err := s.uc.Assessment.Update(r.Context(), &assessment)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, updated)
}

func (s *Server) deleteAssessment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "assessmentID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	if err := s.uc.Assessment.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) putAnswers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "assessmentID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	var answers model.AnswerSet
	if err := decodeBody(r, &answers); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	updated, status, err := s.uc.Assessment.RecordAnswers(r.Context(), id, answers)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"assessment": updated,
		"completion": status,
	})
}

func (s *Server) getCompletion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "assessmentID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	assessment, err := s.uc.Assessment.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	status, err := s.uc.Assessment.Completion(r.Context(), assessment)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, status)
}

func (s *Server) triggerRun(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "assessmentID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	opts := usecase.RunOptions{
		UseAssisted: r.URL.Query().Get("mode") != "algorithmic",
	}

	// Assisted runs can take a while. wait=false detaches the run and
	// returns immediately; the result is picked up via the runs listing.
	if r.URL.Query().Get("wait") == "false" {
		async.Dispatch(r.Context(), func(ctx context.Context) error {
			_, err := s.uc.Scoring.Score(ctx, id, opts)
			return err
		})
		respondJSON(w, r, http.StatusAccepted, map[string]string{"status": "accepted"})
		return
	}

	run, err := s.uc.Scoring.Score(r.Context(), id, opts)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, run)
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "assessmentID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	runs, err := s.uc.Scoring.ListRuns(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, runs)
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "assessmentID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	runID := chi.URLParam(r, "runID")

	run, err := s.uc.Scoring.GetRun(r.Context(), id, runID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, run)
}

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "assessmentID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	dashboard, err := s.uc.Scoring.Dashboard(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, dashboard)
}

func (s *Server) createScenario(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "assessmentID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	var scenario model.Scenario
	if err := decodeBody(r, &scenario); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	scenario.AssessmentID = id

	created, err := s.uc.Scenario.Create(r.Context(), &scenario)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	respondJSON(w, r, http.StatusCreated, created)
}

func (s *Server) listScenarios(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "assessmentID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	scenarios, err := s.uc.Scenario.ListByAssessment(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, scenarios)
}

func (s *Server) getScenario(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "scenarioID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	scenario, err := s.uc.Scenario.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, scenario)
}

func (s *Server) updateScenario(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "scenarioID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	var scenario model.Scenario
	if err := decodeBody(r, &scenario); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	scenario.ID = id

	updated, err := s.uc.Scenario.Update(r.Context(), &scenario)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, updated)
}

func (s *Server) deleteScenario(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "scenarioID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	if err := s.uc.Scenario.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getProgression(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "scenarioID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	progression, err := s.uc.Scenario.Progression(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, progression)
}

func (s *Server) listControls(w http.ResponseWriter, r *http.Request) {
	controls, err := s.uc.Controls.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, controls)
}

func (s *Server) putControl(w http.ResponseWriter, r *http.Request) {
	controlID := chi.URLParam(r, "controlID")

	var control model.Control
	if err := decodeBody(r, &control); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	control.ID = types.ControlID(controlID)

	if err := s.uc.Controls.Put(r.Context(), &control); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	respondJSON(w, r, http.StatusOK, &control)
}
