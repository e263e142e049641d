package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"agro-mission-service/internal/api/dto"
	"agro-mission-service/internal/domain"
	"agro-mission-service/internal/planner"
	"agro-mission-service/internal/ports"
)

// MissionHandler orchestrates mission builds and exposes stored missions.
// It coordinates request decoding, the planning core, and persistence.
type MissionHandler struct {
	Repo    ports.MissionRepository
	Planner ports.CoveragePlanner
	Opts    planner.Options
}

// Build runs one mission build end to end: decode, persist as running,
// execute the planning core, persist the outcome, respond.
func (h *MissionHandler) Build(w http.ResponseWriter, r *http.Request) {
	var req dto.BuildMissionRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	buildReq, err := buildRequestFromDTO(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	inputRaw, err := json.Marshal(req)
	if err != nil {
		log.Printf("encode mission input failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	id, err := h.Repo.CreateMission(r.Context(), inputRaw)
	if err != nil {
		log.Printf("create mission failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	mission, logs, err := planner.Build(r.Context(), buildReq, h.Planner, h.Opts)
	if err != nil {
		if merr := h.Repo.MarkMissionFailed(r.Context(), id, err.Error(), logs); merr != nil {
			log.Printf("mark mission %d failed errored: %v", id, merr)
		}
		writeJSON(w, r, statusForBuildError(err), map[string]any{
			"id":     id,
			"status": planner.FailureStatus(err),
			"error":  err.Error(),
			"logs":   logs,
		})
		return
	}

	res := missionToResponse(id, mission)

	resultRaw, err := json.Marshal(res)
	if err != nil {
		log.Printf("encode mission result failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if err := h.Repo.MarkMissionSuccess(r.Context(), id, resultRaw); err != nil {
		log.Printf("mark mission %d success failed: %v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

// List returns stored mission summaries, newest first.
func (h *MissionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	records, err := h.Repo.ListMissions(r.Context(), limit)
	if err != nil {
		log.Printf("list missions failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListMissionsResponse{
		Missions: make([]dto.MissionSummaryResponse, 0, len(records)),
	}
	for _, rec := range records {
		res.Missions = append(res.Missions, dto.MissionSummaryResponse{
			ID:        rec.ID,
			Status:    rec.Status,
			CreatedAt: rec.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns one stored mission with its full result document.
func (h *MissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	rawID := strings.TrimPrefix(r.URL.Path, "/missions/")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id < 1 {
		writeError(w, r, http.StatusBadRequest, "invalid mission id")
		return
	}

	rec, err := h.Repo.GetMission(r.Context(), id)
	if err != nil {
		log.Printf("get mission %d failed: %v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if rec == nil {
		writeError(w, r, http.StatusNotFound, "mission not found")
		return
	}

	out := map[string]any{
		"id":         rec.ID,
		"status":     rec.Status,
		"created_at": rec.CreatedAt,
		"input":      json.RawMessage(rec.InputJSON),
	}
	if len(rec.ResultJSON) > 0 {
		out["result"] = json.RawMessage(rec.ResultJSON)
	}

	writeJSON(w, r, http.StatusOK, out)
}

func statusForBuildError(err error) int {
	switch {
	case errors.Is(err, planner.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, planner.ErrCoveragePlanning),
		errors.Is(err, planner.ErrCapacityExceeded),
		errors.Is(err, planner.ErrTransitUnreachable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func buildRequestFromDTO(req dto.BuildMissionRequest) (planner.BuildRequest, error) {
	field, err := ringFromPairs(req.Field)
	if err != nil {
		return planner.BuildRequest{}, errors.New("field: " + err.Error())
	}
	runway, err := lineFromPairs(req.RunwayCenterline)
	if err != nil {
		return planner.BuildRequest{}, errors.New("runway_centerline: " + err.Error())
	}

	nfz := make([]domain.Polygon, 0, len(req.NFZ))
	for i, raw := range req.NFZ {
		ring, err := ringFromPairs(raw)
		if err != nil {
			return planner.BuildRequest{}, errors.New("nfz[" + strconv.Itoa(i) + "]: " + err.Error())
		}
		nfz = append(nfz, ring)
	}

	profile, err := profileFromDTO(req.Aircraft)
	if err != nil {
		return planner.BuildRequest{}, err
	}

	return planner.BuildRequest{
		Field:   field,
		Runway:  runway,
		NFZ:     nfz,
		Profile: profile,
	}, nil
}

func profileFromDTO(a dto.AircraftRequest) (domain.AircraftProfile, error) {
	routeOrderName := a.RouteOrder
	if routeOrderName == "" {
		routeOrderName = "snake"
	}
	routeOrder, err := domain.ParseRouteOrder(routeOrderName)
	if err != nil {
		return domain.AircraftProfile{}, err
	}

	objectiveName := a.Objective
	if objectiveName == "" {
		objectiveName = "n_swath"
	}
	objective, err := domain.ParseObjective(objectiveName)
	if err != nil {
		return domain.AircraftProfile{}, err
	}

	return domain.AircraftProfile{
		SprayWidthM:            a.SprayWidthM,
		TurnRadiusM:            a.TurnRadiusM,
		TotalCapacityL:         a.TotalCapacityL,
		FuelReserveL:           a.FuelReserveL,
		MixRateLPerHa:          a.MixRateLPerHa,
		FuelBurnLPerKm:         a.FuelBurnLPerKm,
		HeadlandFactor:         a.HeadlandFactor,
		RouteOrder:             routeOrder,
		Objective:              objective,
		UseContinuousCurvature: a.UseContinuousCurvature,
	}, nil
}

func ringFromPairs(raw [][]float64) (domain.Polygon, error) {
	pts, err := pointsFromPairs(raw)
	if err != nil {
		return nil, err
	}
	// Drop an explicit closing vertex; rings are implicitly closed.
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	return domain.Polygon(pts), nil
}

func lineFromPairs(raw [][]float64) (domain.LineString, error) {
	pts, err := pointsFromPairs(raw)
	if err != nil {
		return nil, err
	}
	return domain.LineString(pts), nil
}

func pointsFromPairs(raw [][]float64) ([]domain.Point, error) {
	pts := make([]domain.Point, 0, len(raw))
	for _, pair := range raw {
		if len(pair) < 2 {
			return nil, errors.New("coordinate pair must have 2 values")
		}
		pts = append(pts, domain.Point{X: pair[0], Y: pair[1]})
	}
	return pts, nil
}

func pairsFromLine(line domain.LineString) [][]float64 {
	out := make([][]float64, 0, len(line))
	for _, p := range line {
		out = append(out, p.CoordsToList())
	}
	return out
}

func pairsFromRing(ring domain.Polygon) [][]float64 {
	out := make([][]float64, 0, len(ring)+1)
	for _, p := range ring {
		out = append(out, p.CoordsToList())
	}
	// Close the ring for GeoJSON-style consumers.
	if len(ring) > 0 {
		out = append(out, ring[0].CoordsToList())
	}
	return out
}

func missionToResponse(id int64, m *domain.Mission) dto.MissionResponse {
	trips := make([]dto.TripResponse, 0, len(m.Trips))
	tripGeo := make([]dto.TripGeoResponse, 0, len(m.Trips))
	for _, t := range m.Trips {
		toField := pairsFromLine(t.ToField)
		backHome := pairsFromLine(t.BackHome)
		trips = append(trips, dto.TripResponse{
			StartIdx:  t.StartIdx,
			EndIdx:    t.EndIdx,
			ToField:   toField,
			BackHome:  backHome,
			FuelUsedL: t.FuelUsedL,
			MixUsedL:  t.MixUsedL,
			LengthM:   t.LengthM,
		})
		tripGeo = append(tripGeo, dto.TripGeoResponse{ToField: toField, BackHome: backHome})
	}

	swaths := make([][][]float64, 0, len(m.Path.Swaths))
	for _, s := range m.Path.Swaths {
		swaths = append(swaths, pairsFromLine(s.Line))
	}

	nfz := make([][][]float64, 0, len(m.NFZ))
	for _, z := range m.NFZ {
		nfz = append(nfz, pairsFromRing(z))
	}

	return dto.MissionResponse{
		ID:     id,
		Status: ports.MissionStatusSuccess,
		Trips:  trips,
		Metrics: dto.MetricsResponse{
			LengthTotalM:   m.Metrics.LengthTotalM,
			LengthTransitM: m.Metrics.LengthTransitM,
			LengthSprayM:   m.Metrics.LengthSprayM,
			TimeTotalMin:   m.Metrics.TimeTotalMin,
			TimeTransitMin: m.Metrics.TimeTransitMin,
			TimeSprayMin:   m.Metrics.TimeSprayMin,
			FuelL:          m.Metrics.FuelL,
			FertL:          m.Metrics.FertL,
			FieldAreaHa:    m.Metrics.FieldAreaHa,
			SprayedAreaHa:  m.Metrics.SprayedAreaHa,
		},
		Geo: dto.GeoResponse{
			Field:            pairsFromRing(m.Field),
			NFZ:              nfz,
			RunwayCenterline: pairsFromLine(m.Runway),
			Swaths:           swaths,
			Trips:            tripGeo,
			CoverPath:        pairsFromLine(m.Path.CoverPath),
		},
		Logs: m.Logs,
	}
}
