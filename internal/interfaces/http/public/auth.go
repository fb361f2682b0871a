package public

import (
	"net/http"

	"github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/common"
)

func (h *Handler) authVerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "failed to read authenticated user"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{
			"status":  "ok",
			"user":    user,
			"isAdmin": user.Actor().IsAdmin(),
		})
	}
}
