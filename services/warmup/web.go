package warmup

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/cartcheckout/lib/mycontext"
	"github.com/MarcGrol/cartcheckout/lib/myhttp"
	"github.com/MarcGrol/cartcheckout/lib/mylog"
	"github.com/MarcGrol/cartcheckout/services/checkoutsession"
)

const probeSessionUID = "warmup"

// StatusReader is the part of the status board that must be up before serving shoppers
type StatusReader interface {
	Current(c context.Context, sessionUID string) (checkoutsession.Status, error)
}

type webService struct {
	logger   mylog.Logger
	statuses StatusReader
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(statuses StatusReader) *webService {
	return &webService{
		logger:   mylog.New("warmup"),
		statuses: statuses,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")
}

func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		_, err := s.statuses.Current(c, probeSessionUID)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed warmup request",
		})
	}
}
