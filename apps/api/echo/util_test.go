package echoapi_test

import (
	"bytes"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/cohortplanner/apps/api/echo"
	"github.com/trezcool/cohortplanner/core"
	"github.com/trezcool/cohortplanner/core/cohort"
	"github.com/trezcool/cohortplanner/services/logger"
)

func setup(t *testing.T) *Server {
	conf := &core.Config{
		Env:      "TEST",
		AppName:  "Masomo",
		TestMode: true,
		Server:   core.ServerConfig{DisableReqLogs: true},
	}

	logger := logsvc.NewRollbarLogger(log.New(ioutil.Discard, "", 0), conf)
	logger.Enable(false)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	cohort.InitValidators(validate, translator)

	planner, err := cohort.NewPlanner(cohort.DefaultPolicy)
	if err != nil {
		t.Fatalf("NewPlanner() failed: %v", err)
	}

	return NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		Planner:    planner,
		Validate:   validate,
		Translator: translator,
	})
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte // nil: only the code is checked
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
	}
	if tt.wantData != nil {
		assert.JSONEq(t, string(tt.wantData), rec.Body.String())
	}
}

func runHTTPTests(t *testing.T, app *Server, tests []httpTest) {
	for _, tt := range tests {
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
