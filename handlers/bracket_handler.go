package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Dosada05/bracket-hub/brackets"
	"github.com/Dosada05/bracket-hub/services"
)

type BracketHandler struct {
	bracketService  services.BracketService
	overrideService services.OverrideService
}

func NewBracketHandler(bracketService services.BracketService, overrideService services.OverrideService) *BracketHandler {
	return &BracketHandler{
		bracketService:  bracketService,
		overrideService: overrideService,
	}
}

// GetBracketHandler handles GET /bracket/{competitionID}
func (h *BracketHandler) GetBracketHandler(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.bracketService.GetBracket(r.Context(), competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetBracketHTMLHandler handles GET /bracket/{competitionID}/html and serves
// the rendered markup partial for embedding.
func (h *BracketHandler) GetBracketHTMLHandler(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	markup, err := h.bracketService.RenderBracketHTML(r.Context(), competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, markup)
}

// GetOverridesHandler handles GET /bracket/{competitionID}/overrides and
// returns the raw substitution map for admin tooling.
func (h *BracketHandler) GetOverridesHandler(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	overrides, err := h.overrideService.ListOverrides(r.Context(), competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"overrides": overrides}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateTeamHandler handles POST /bracket/update-team/
func (h *BracketHandler) UpdateTeamHandler(w http.ResponseWriter, r *http.Request) {
	var input services.TeamChangeInput
	if err := readJSON(w, r, &input); err != nil {
		legacyError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	override, err := h.overrideService.ApplyTeamChange(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCompetitionNotFound):
			legacyError(w, r, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrTeamNotEnrolled):
			legacyError(w, r, http.StatusBadRequest,
				fmt.Sprintf("Team %q is not enrolled in this competition", input.NewTeamName))
		case errors.Is(err, services.ErrOverrideNamesRequired):
			legacyError(w, r, http.StatusBadRequest, err.Error())
		default:
			legacyError(w, r, http.StatusInternalServerError, "failed to update bracket team")
		}
		return
	}

	legacySuccess(w, r, jsonResponse{
		"message":       fmt.Sprintf("Team name updated from %q to %q", override.OldName, override.NewName),
		"change_type":   override.ChangeType,
		"new_team_name": override.NewName,
	})
}

type saveSeedingInput struct {
	OrderedIDs []json.RawMessage `json:"ordered_ids"`
}

// SaveSeedingHandler handles POST /bracket/save-seeding/{competitionID}/
func (h *BracketHandler) SaveSeedingHandler(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		legacyError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var input saveSeedingInput
	if err := readJSON(w, r, &input); err != nil {
		legacyError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	orderedIDs, err := coerceIDs(input.OrderedIDs)
	if err != nil {
		legacyError(w, r, http.StatusBadRequest, "Invalid ID format in seeding order.")
		return
	}

	count, err := h.bracketService.SaveSeeding(r.Context(), competitionID, orderedIDs)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCompetitionNotFound):
			legacyError(w, r, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrEmptySeedingOrder):
			legacyError(w, r, http.StatusBadRequest, "No seeding order provided.")
		case errors.Is(err, services.ErrInvalidSeedingOrder),
			errors.Is(err, services.ErrNotEnoughTeams):
			legacyError(w, r, http.StatusBadRequest, err.Error())
		default:
			legacyError(w, r, http.StatusInternalServerError, "failed to save seeding")
		}
		return
	}

	legacySuccess(w, r, jsonResponse{
		"message":     fmt.Sprintf("Seeding saved and %d matches generated successfully!", count),
		"match_count": count,
	})
}

// GenerateMatchesHandler handles POST /bracket/generate-matches/{competitionID}/
func (h *BracketHandler) GenerateMatchesHandler(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		legacyError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	count, err := h.bracketService.GenerateMatches(r.Context(), competitionID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCompetitionNotFound):
			legacyError(w, r, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrNotEnoughTeams):
			legacyError(w, r, http.StatusBadRequest, err.Error())
		default:
			legacyError(w, r, http.StatusInternalServerError, "failed to generate matches")
		}
		return
	}

	legacySuccess(w, r, jsonResponse{
		"message":     fmt.Sprintf("Successfully generated %d matches", count),
		"match_count": count,
	})
}

// ResetBracketHandler handles POST /bracket/reset/{competitionID}/
func (h *BracketHandler) ResetBracketHandler(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		legacyError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.bracketService.ResetBracket(r.Context(), competitionID); err != nil {
		switch {
		case errors.Is(err, services.ErrCompetitionNotFound):
			legacyError(w, r, http.StatusNotFound, err.Error())
		default:
			legacyError(w, r, http.StatusInternalServerError, "failed to reset bracket")
		}
		return
	}

	legacySuccess(w, r, jsonResponse{
		"message": "Bracket has been reset. You can now re-seed the participants.",
	})
}

type previewInput struct {
	Teams json.RawMessage `json:"teams"`
}

// PreviewBracketHandler handles POST /bracket/preview. It generates and
// renders a bracket from an arbitrary teams payload without touching storage,
// tolerating the mixed entry shapes legacy pages embed.
func (h *BracketHandler) PreviewBracketHandler(w http.ResponseWriter, r *http.Request) {
	var input previewInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teams, err := brackets.ParseTeams(input.Teams)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bracket, err := brackets.GenerateSingleElimination(teams)
	if err != nil && !errors.Is(err, brackets.ErrNotEnoughTeams) {
		serverErrorResponse(w, r, err)
		return
	}

	markup, err := brackets.RenderHTML(bracket)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket, "html": markup}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// coerceIDs tolerates both number and string entries, which is what the
// admin frontend has historically sent.
func coerceIDs(raw []json.RawMessage) ([]int, error) {
	ids := make([]int, 0, len(raw))
	for _, entry := range raw {
		var asInt int
		if err := json.Unmarshal(entry, &asInt); err == nil {
			ids = append(ids, asInt)
			continue
		}
		var asString string
		if err := json.Unmarshal(entry, &asString); err != nil {
			return nil, fmt.Errorf("seeding entry %s is neither a number nor a string", entry)
		}
		parsed, err := strconv.Atoi(asString)
		if err != nil {
			return nil, fmt.Errorf("seeding entry %q is not a valid ID", asString)
		}
		ids = append(ids, parsed)
	}
	return ids, nil
}
