package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/ppiankov/douessay/internal/agreement"
	"github.com/ppiankov/douessay/internal/model"
	"github.com/ppiankov/douessay/internal/rubric"
)

type gradeRequest struct {
	Text   string           `json:"text"`
	Grade  model.GradeLevel `json:"grade"`
	UserID string           `json:"user_id,omitempty"`
}

type assessRequest struct {
	Text           string                `json:"text"`
	Grade          model.GradeLevel      `json:"grade"`
	TeacherTargets *model.TeacherTargets `json:"teacher_targets,omitempty"`
}

type agreementRequest struct {
	Text         string             `json:"text"`
	Grade        model.GradeLevel   `json:"grade"`
	Teacher      agreement.ScoreSet `json:"teacher"`
	TeacherLevel interface{}        `json:"teacher_rubric_level,omitempty"` // object, string or JSON string
}

type agreementResponse struct {
	Report       agreement.Report  `json:"report"`
	TeacherLevel model.RubricLevel `json:"teacher_rubric_level"`
	System       model.Assessment  `json:"system"`
}

func (s *Server) handleGrade(w http.ResponseWriter, r *http.Request) {
	req := gradeRequest{Grade: model.DefaultGrade}
	if !s.decode(w, r, &req) {
		return
	}
	res := s.grader.GradeEssayFor(r.Context(), req.UserID, req.Text, req.Grade)
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	req := assessRequest{Grade: model.DefaultGrade}
	if !s.decode(w, r, &req) {
		return
	}
	respondJSON(w, http.StatusOK, s.grader.AssessEssay(r.Context(), req.Text, req.Grade, req.TeacherTargets))
}

func (s *Server) handleAgreement(w http.ResponseWriter, r *http.Request) {
	req := agreementRequest{Grade: model.DefaultGrade}
	if !s.decode(w, r, &req) {
		return
	}

	a := s.grader.AssessEssay(r.Context(), req.Text, req.Grade, nil)
	if a.Error != "" {
		respondJSON(w, http.StatusOK, agreementResponse{System: a, TeacherLevel: rubric.ForScore(req.Teacher.Percentage)})
		return
	}

	system := agreement.FromFactorScores(a.Score, a.FactorScores.FactorScores, a.Subsystems)
	teacherLevel := rubric.ForScore(req.Teacher.Percentage)
	if req.TeacherLevel != nil {
		teacherLevel = rubric.Normalize(req.TeacherLevel, req.Teacher.Percentage, s.log)
	}

	respondJSON(w, http.StatusOK, agreementResponse{
		Report:       agreement.Compare(system, req.Teacher),
		TeacherLevel: teacherLevel,
		System:       a,
	})
}

// decode reads a JSON body bounded by MaxBodyBytes and writes a 400 on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body := r.Body
	if s.cfg.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}

	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		s.log.Debug("bad request body", "request_id", middleware.GetReqID(r.Context()), "error", err)
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}

	if t, ok := v.(interface{ essayText() string }); ok && strings.TrimSpace(t.essayText()) == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return false
	}
	return true
}

func (r *gradeRequest) essayText() string     { return r.Text }
func (r *assessRequest) essayText() string    { return r.Text }
func (r *agreementRequest) essayText() string { return r.Text }
