package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lovelaced/polkadot-locks-report/interfaces"
	"github.com/lovelaced/polkadot-locks-report/report"
	"github.com/lovelaced/polkadot-locks-report/services"
	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/lovelaced/polkadot-locks-report/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxAddressesPerRequest limits the accounts of a single multi-account query
const MaxAddressesPerRequest = 100

// Api serves lock reports computed on demand
type Api struct {
	reporter    *services.Reporter
	store       interfaces.ReportStore
	chainConfig types.ChainConfig
	now         func() time.Time
}

// NewApi returns the api handlers. store may be nil, stored reports are then unavailable.
func NewApi(reporter *services.Reporter, store interfaces.ReportStore, chainConfig types.ChainConfig) *Api {
	return &Api{
		reporter:    reporter,
		store:       store,
		chainConfig: chainConfig,
		now:         time.Now,
	}
}

// NewRouter registers the api routes. A non nil gatherer is exposed on /metrics.
func NewRouter(api *Api, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	apiV1 := router.Group("/api/v1")
	apiV1.GET("/head", api.ApiHead)
	apiV1.GET("/locks/:address", api.ApiAccountLocks)
	apiV1.POST("/locks", api.ApiLocks)

	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	return router
}

// ApiHead godoc
// @Summary Get the chain head lock reports are computed against
// @Tags Locks
// @Produce  json
// @Success 200 {object} types.ApiResponse{data=types.ApiHeadResponse}
// @Failure 500 {object} types.ApiResponse
// @Router /api/v1/head [get]
func (api *Api) ApiHead(c *gin.Context) {
	w := c.Writer
	r := c.Request

	head := api.reporter.LatestBlock(r.Context())
	if head == 0 {
		sendServerErrorResponse(w, r.URL.String(), "could not retrieve chain head")
		return
	}

	sendOKResponse(w, r.URL.String(), types.ApiHeadResponse{
		Chain:  api.chainConfig.ConfigName,
		Number: head,
	})
}

// ApiAccountLocks godoc
// @Summary Get the voting and vesting locks of an account
// @Tags Locks
// @Description Computes the locks of an account at the current chain head. With stored=true the latest stored report is returned instead.
// @Produce  json
// @Param  address path string true "SS58 address"
// @Param  stored query bool false "Return the latest stored report"
// @Success 200 {object} types.ApiResponse{data=types.AccountReport}
// @Failure 400 {object} types.ApiResponse
// @Failure 404 {object} types.ApiResponse
// @Failure 500 {object} types.ApiResponse
// @Router /api/v1/locks/{address} [get]
func (api *Api) ApiAccountLocks(c *gin.Context) {
	w := c.Writer
	r := c.Request

	address := strings.TrimSpace(c.Param("address"))
	if _, err := utils.ParseAddress(address, api.chainConfig.SS58Prefix); err != nil {
		sendErrorResponse(w, r.URL.String(), "invalid address provided")
		return
	}

	if c.Query("stored") == "true" {
		api.storedAccountReport(c, address)
		return
	}

	rpt, err := api.generate(c, []string{address})
	if err != nil {
		logger.WithError(err).WithField("route", r.URL.String()).Error("error generating lock report")
		sendServerErrorResponse(w, r.URL.String(), "could not compute locks")
		return
	}
	sendOKResponse(w, r.URL.String(), rpt.Accounts[0])
}

func (api *Api) storedAccountReport(c *gin.Context, address string) {
	w := c.Writer
	r := c.Request

	if api.store == nil {
		sendErrorWithCodeResponse(w, r.URL.String(), "no report store configured", http.StatusNotImplemented)
		return
	}
	stored, err := api.store.GetLatestAccountReport(r.Context(), address)
	if err != nil {
		logger.WithError(err).WithField("route", r.URL.String()).Error("error retrieving stored report")
		sendServerErrorResponse(w, r.URL.String(), "could not retrieve stored report")
		return
	}
	if stored == nil {
		sendErrorWithCodeResponse(w, r.URL.String(), "no stored report for address", http.StatusNotFound)
		return
	}
	sendOKResponse(w, r.URL.String(), stored)
}

// ApiLocks godoc
// @Summary Get the locks of multiple accounts
// @Tags Locks
// @Accept  json
// @Produce  json
// @Param  request body types.ApiLocksRequest true "Addresses"
// @Success 200 {object} types.ApiResponse{data=types.Report}
// @Failure 400 {object} types.ApiResponse
// @Failure 500 {object} types.ApiResponse
// @Router /api/v1/locks [post]
func (api *Api) ApiLocks(c *gin.Context) {
	w := c.Writer
	r := c.Request

	var req types.ApiLocksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(w, r.URL.String(), "could not parse request body")
		return
	}
	if len(req.Addresses) == 0 {
		sendErrorResponse(w, r.URL.String(), "no addresses provided")
		return
	}
	if len(req.Addresses) > MaxAddressesPerRequest {
		sendErrorResponse(w, r.URL.String(), fmt.Sprintf("only a maximum of %d addresses per request is allowed", MaxAddressesPerRequest))
		return
	}

	addresses := make([]string, 0, len(req.Addresses))
	for _, address := range req.Addresses {
		if address = strings.TrimSpace(address); address != "" {
			addresses = append(addresses, address)
		}
	}

	rpt, err := api.generate(c, addresses)
	if err != nil {
		logger.WithError(err).WithField("route", r.URL.String()).Error("error generating lock report")
		sendServerErrorResponse(w, r.URL.String(), "could not compute locks")
		return
	}
	sendOKResponse(w, r.URL.String(), rpt)
}

func (api *Api) generate(c *gin.Context, addresses []string) (*types.Report, error) {
	generatedAt := api.now()
	run, err := api.reporter.Generate(c.Request.Context(), addresses)
	if err != nil {
		return nil, err
	}
	return report.Build(report.NewID(), run.Accounts, run.Head, generatedAt, api.chainConfig), nil
}
