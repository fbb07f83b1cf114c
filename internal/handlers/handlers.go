package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"brewshare/internal/database"
	"brewshare/internal/models"
	"brewshare/internal/share"

	"github.com/rs/zerolog"
)

type Handler struct {
	store  database.Store
	logger zerolog.Logger
}

func NewHandler(store database.Store, logger zerolog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// importResponse wraps the record recognized by the dispatcher.
type importResponse struct {
	Type   share.Kind          `json:"type"`
	Bean   *models.CoffeeBean  `json:"bean,omitempty"`
	Method *models.Method      `json:"method,omitempty"`
	Note   *models.BrewingNote `json:"note,omitempty"`
}

// HandleImport accepts pasted share text or a JSON document, routes it
// through the dispatcher, stores the recognized record, and echoes it back.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	res := share.ExtractFromText(string(body))
	if res == nil {
		h.writeError(w, http.StatusUnprocessableEntity, "unrecognized format")
		return
	}

	switch res.Kind {
	case share.KindRawJSON:
		// Raw JSON is only importable when it is a viable method document.
		doc, _ := res.Raw.(map[string]any)
		method := share.MethodFromDocument(doc)
		if method == nil {
			h.writeError(w, http.StatusUnprocessableEntity, "parse failed")
			return
		}
		if err := h.store.CreateMethod(method); err != nil {
			h.storeError(w, "create method", err)
			return
		}
		h.writeJSON(w, http.StatusCreated, importResponse{Type: share.KindMethod, Method: method})

	case share.KindCoffeeBean:
		if err := h.store.CreateBean(res.Bean); err != nil {
			h.storeError(w, "create bean", err)
			return
		}
		h.writeJSON(w, http.StatusCreated, importResponse{Type: res.Kind, Bean: res.Bean})

	case share.KindMethod:
		if err := h.store.CreateMethod(res.Method); err != nil {
			h.storeError(w, "create method", err)
			return
		}
		h.writeJSON(w, http.StatusCreated, importResponse{Type: res.Kind, Method: res.Method})

	case share.KindNote:
		if err := h.store.CreateNote(res.Note); err != nil {
			h.storeError(w, "create note", err)
			return
		}
		h.writeJSON(w, http.StatusCreated, importResponse{Type: res.Kind, Note: res.Note})

	default:
		h.writeError(w, http.StatusUnprocessableEntity, "unrecognized format")
	}
}

// ========== Bean Handlers ==========

func (h *Handler) HandleBeanList(w http.ResponseWriter, r *http.Request) {
	beans, err := h.store.ListBeans()
	if err != nil {
		h.storeError(w, "list beans", err)
		return
	}
	if beans == nil {
		beans = []*models.CoffeeBean{}
	}
	h.writeJSON(w, http.StatusOK, beans)
}

func (h *Handler) HandleBeanCreate(w http.ResponseWriter, r *http.Request) {
	var bean models.CoffeeBean
	if err := json.NewDecoder(r.Body).Decode(&bean); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if bean.ID == "" {
		bean.ID = share.NewBeanID()
	}
	if bean.Timestamp == 0 {
		bean.Timestamp = time.Now().UnixMilli()
	}
	if bean.Remaining == "" {
		bean.Remaining = bean.Capacity
	}
	if err := h.store.CreateBean(&bean); err != nil {
		h.storeError(w, "create bean", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, &bean)
}

func (h *Handler) HandleBeanDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteBean(r.PathValue("id")); err != nil {
		h.storeError(w, "delete bean", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleBeanShare renders a bean as copyable annotated text.
func (h *Handler) HandleBeanShare(w http.ResponseWriter, r *http.Request) {
	bean, err := h.store.GetBean(r.PathValue("id"))
	if err != nil {
		h.storeError(w, "get bean", err)
		return
	}
	h.writeText(w, share.FormatCoffeeBean(bean))
}

// ========== Method Handlers ==========

func (h *Handler) HandleMethodList(w http.ResponseWriter, r *http.Request) {
	methods, err := h.store.ListMethods()
	if err != nil {
		h.storeError(w, "list methods", err)
		return
	}
	if methods == nil {
		methods = []*models.Method{}
	}
	h.writeJSON(w, http.StatusOK, methods)
}

// HandleMethodCreate imports a method JSON document. The document gets a
// fresh id and the codec's defaults, exactly like paste-import.
func (h *Handler) HandleMethodCreate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	method := share.ParseMethodFromJSON(string(body))
	if method == nil {
		h.writeError(w, http.StatusUnprocessableEntity, "parse failed")
		return
	}
	if err := h.store.CreateMethod(method); err != nil {
		h.storeError(w, "create method", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, method)
}

func (h *Handler) HandleMethodDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteMethod(r.PathValue("id")); err != nil {
		h.storeError(w, "delete method", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleMethodShare renders a method as copyable annotated text.
func (h *Handler) HandleMethodShare(w http.ResponseWriter, r *http.Request) {
	method, err := h.store.GetMethod(r.PathValue("id"))
	if err != nil {
		h.storeError(w, "get method", err)
		return
	}
	h.writeText(w, share.FormatMethod(method))
}

// HandleMethodJSON returns the canonical JSON document for a method.
func (h *Handler) HandleMethodJSON(w http.ResponseWriter, r *http.Request) {
	method, err := h.store.GetMethod(r.PathValue("id"))
	if err != nil {
		h.storeError(w, "get method", err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write([]byte(share.MethodToJSON(method)))
}

// HandleMethodOptimization returns the stripped optimization document.
func (h *Handler) HandleMethodOptimization(w http.ResponseWriter, r *http.Request) {
	method, err := h.store.GetMethod(r.PathValue("id"))
	if err != nil {
		h.storeError(w, "get method", err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write([]byte(share.GenerateOptimizationJSON(method)))
}

// ========== Brewing Note Handlers ==========

func (h *Handler) HandleNoteList(w http.ResponseWriter, r *http.Request) {
	notes, err := h.store.ListNotes()
	if err != nil {
		h.storeError(w, "list notes", err)
		return
	}
	if notes == nil {
		notes = []*models.BrewingNote{}
	}
	h.writeJSON(w, http.StatusOK, notes)
}

func (h *Handler) HandleNoteCreate(w http.ResponseWriter, r *http.Request) {
	var note models.BrewingNote
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if note.Timestamp == 0 {
		note.Timestamp = time.Now().UnixMilli()
	}
	if note.ID == "" {
		note.ID = "note-" + strconv.FormatInt(note.Timestamp, 10)
	}
	if err := h.store.CreateNote(&note); err != nil {
		h.storeError(w, "create note", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, &note)
}

func (h *Handler) HandleNoteDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteNote(r.PathValue("id")); err != nil {
		h.storeError(w, "delete note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleNoteShare renders a brewing note as copyable annotated text.
func (h *Handler) HandleNoteShare(w http.ResponseWriter, r *http.Request) {
	note, err := h.store.GetNote(r.PathValue("id"))
	if err != nil {
		h.storeError(w, "get note", err)
		return
	}
	h.writeText(w, share.FormatBrewingNote(note))
}

func (h *Handler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, http.StatusNotFound, "not found")
}

// ========== Response Helpers ==========

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *Handler) writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, text); err != nil {
		h.logger.Error().Err(err).Msg("failed to write response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

// storeError maps storage failures to HTTP statuses.
func (h *Handler) storeError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, database.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "not found")
		return
	}
	h.logger.Error().Err(err).Str("op", op).Msg("store operation failed")
	h.writeError(w, http.StatusInternalServerError, "internal error")
}
