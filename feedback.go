package otffeedback

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/nsip/otf-feedback/internal/engine"
	"github.com/nsip/otf-feedback/internal/normalize"
	"github.com/nsip/otf-feedback/internal/scorer"
	"github.com/nsip/otf-feedback/internal/util"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

type OtfFeedbackService struct {
	// embedded web server to handle feedback requests
	e *echo.Echo
	// the unique name of this service when running multiple instances
	serviceName string
	// the unique id of this service when running multiple instances
	serviceID string
	// the host address this service instance is running on
	serviceHost string
	// the port that this service instance is running on
	servicePort int
	// endpoint of the external scoring service, blank disables /review
	scorerURL string
	// token passed to the scoring service
	scorerToken string
	// per-call limit for the scoring service
	scorerTimeout time.Duration
	// log at debug level
	debug bool
	// client for the scoring service, nil when not configured
	scorer *scorer.Client
}

//
// Body of a /feedback request.
// The case and answers are read leniently, see the normalize package
// for the shapes accepted.
//
type FeedbackRequest struct {
	//
	// the case study: title, questions (with marks), toolkit,
	// related topics and resources
	//
	Case json.RawMessage `json:"case"`
	//
	// the student's answers, an array aligned with the questions
	// or an object keyed by question index
	//
	Answers json.RawMessage `json:"answers"`
	//
	// the external scorer's response: {perQuestion: [{marks, comments}]}
	// a missing or malformed value scores every question from 0
	//
	RawScore json.RawMessage `json:"rawScore"`
}

//
// Body of a /review request: as for /feedback but the raw
// scores are fetched from the configured scoring service.
//
type ReviewRequest struct {
	Case    json.RawMessage `json:"case"`
	Answers json.RawMessage `json:"answers"`
}

// submission is a request after normalization
type submission struct {
	caseID    string
	caseDoc   normalize.CaseDoc
	meta      engine.CaseMeta
	questions []engine.Question
	answers   []string
}

//
// create a new service instance
//
func New(options ...Option) (*OtfFeedbackService, error) {

	srvc := OtfFeedbackService{}

	if err := srvc.setOptions(options...); err != nil {
		return nil, err
	}

	srvc.e = echo.New()
	srvc.e.HideBanner = true
	srvc.e.Logger.SetLevel(log.INFO)
	if srvc.debug {
		srvc.e.Logger.SetLevel(log.DEBUG)
	}
	srvc.e.Use(middleware.Recover())
	srvc.e.Use(middleware.Logger())

	if srvc.scorerURL != "" {
		srvc.scorer = scorer.NewClient(srvc.scorerURL, srvc.scorerToken, srvc.scorerTimeout)
	}

	// add pingable method to know we're up
	srvc.e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, "OK")
	})
	srvc.e.GET("/descriptors", func(c echo.Context) error {
		return c.JSON(http.StatusOK, engine.Descriptors())
	})
	srvc.e.POST("/feedback", srvc.buildFeedbackHandler())
	srvc.e.POST("/review", srvc.buildReviewHandler())

	return &srvc, nil
}

//
// start the service running
//
func (s *OtfFeedbackService) Start() {

	address := fmt.Sprintf("%s:%d", s.serviceHost, s.servicePort)
	go func(addr string) {
		if err := s.e.Start(addr); err != nil && err != http.ErrServerClosed {
			s.e.Logger.Info("error starting server: ", err, ", shutting down...")
			// attempt clean shutdown by raising sig int
			p, _ := os.FindProcess(os.Getpid())
			p.Signal(os.Interrupt)
		}
	}(address)

}

//
// creates the feedback method
// requires a json body of
// case: the case study document
// answers: the submitted answers
// rawScore: the external scorer's response for those answers
//
func (s *OtfFeedbackService) buildFeedbackHandler() echo.HandlerFunc {

	return func(c echo.Context) error {
		fr := &FeedbackRequest{}
		if err := c.Bind(fr); err != nil {
			c.Logger().Debug("bind error: ", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		sub, err := parseSubmission(fr.Case, fr.Answers)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		raw := normalize.RawScores(gjson.ParseBytes(fr.RawScore))
		if len(raw) != len(sub.questions) {
			c.Logger().Debugf("case %q: %d raw scores for %d questions", sub.caseID, len(raw), len(sub.questions))
		}

		result := engine.Assemble(sub.questions, sub.answers, raw, sub.meta)
		return c.JSON(http.StatusOK, s.feedbackResponse(sub, result))
	}
}

//
// creates the review method
// as for feedback, but obtains the raw scores by calling
// the external scoring service first
//
func (s *OtfFeedbackService) buildReviewHandler() echo.HandlerFunc {

	return func(c echo.Context) error {
		if s.scorer == nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "no scoring service configured")
		}

		rr := &ReviewRequest{}
		if err := c.Bind(rr); err != nil {
			c.Logger().Debug("bind error: ", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		sub, err := parseSubmission(rr.Case, rr.Answers)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		defer util.TimeTrack(time.Now(), "review "+sub.caseID)

		req := scorer.NewRequest(sub.meta, sub.questions, sub.answers)
		raw, err := s.scorer.Score(c.Request().Context(), req)
		if err != nil {
			c.Logger().Error("scoring error: ", err)
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}

		result := engine.Assemble(sub.questions, sub.answers, raw, sub.meta)
		return c.JSON(http.StatusOK, s.feedbackResponse(sub, result))
	}
}

//
// normalize the case document and answers of a request
//
func parseSubmission(caseDoc, answers json.RawMessage) (submission, error) {

	if len(caseDoc) == 0 {
		return submission{}, errors.New("must supply a case")
	}
	cd, err := normalize.Case(caseDoc)
	if err != nil {
		return submission{}, errors.Wrap(err, "cannot read case")
	}
	if cd.Questions.Kind != normalize.Canonical {
		return submission{}, errors.Errorf("cannot read case questions: %s", cd.Questions.Reason)
	}

	return submission{
		caseID:    cd.ID,
		caseDoc:   cd,
		meta:      cd.Meta(),
		questions: cd.Questions.Questions,
		answers:   normalize.Answers(gjson.ParseBytes(answers), len(cd.Questions.Questions)),
	}, nil
}

func (s *OtfFeedbackService) feedbackResponse(sub submission, result engine.FeedbackResult) map[string]interface{} {
	return map[string]interface{}{
		"feedback":            result,
		"readiness":           engine.MeetsMinimum(sub.questions, sub.answers),
		"caseID":              sub.caseID,
		"case":                sub.caseDoc,
		"reviewID":            util.GenerateID(),
		"feedbackServiceID":   s.serviceID,
		"feedbackServiceName": s.serviceName,
	}
}

//
// shut the server down gracefully
//
func (s *OtfFeedbackService) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.e.Shutdown(ctx); err != nil {
		fmt.Println("could not shut down server cleanly: ", err)
		s.e.Logger.Fatal(err)
	}

}

func (s *OtfFeedbackService) PrintConfig() {

	fmt.Println("\n\tOTF-Feedback Service Configuration")
	fmt.Println("\t---------------------------------")
	fmt.Println()

	s.printID()
	s.printScorerConfig()

}

func (s *OtfFeedbackService) printID() {
	fmt.Println("\tservice name:\t\t", s.serviceName)
	fmt.Println("\tservice ID:\t\t", s.serviceID)
	fmt.Println("\tservice host:\t\t", s.serviceHost)
	fmt.Println("\tservice port:\t\t", s.servicePort)
	fmt.Println("\tdebug logging:\t\t", s.debug)
}

func (s *OtfFeedbackService) printScorerConfig() {
	if s.scorerURL == "" {
		fmt.Println("\tscorer:\t\t\t not configured, /review disabled")
		return
	}
	fmt.Println("\tscorer url:\t\t", s.scorerURL)
	fmt.Println("\tscorer timeout:\t\t", s.scorerTimeout)
	// display only a partial token
	tokenParts := strings.Split(s.scorerToken, ".")
	partialToken := tokenParts[len(tokenParts)-1]
	fmt.Println("\tscorer token(partial):\t", partialToken)
}
