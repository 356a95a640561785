package snsd

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stellarns/snsd/common"
	"github.com/stellarns/snsd/schema"
	"github.com/stellarns/snsd/txn"
)

func (s *SNS) runAPI(port string) {
	r := s.engine
	r.Use(common.CORSMiddleware())

	v1 := r.Group("/")
	{
		v1.GET("/lookup", s.lookup)
		// envelope building resolves ledger state on every call, keep it
		// behind the rate limiter
		v1.POST("/contract/:command", common.LimiterMiddleware(60, "M", nil), s.postContract)
		v1.GET("/orders/:account", s.getOrders)
		v1.GET("/envelope/:hash", s.getEnvelope)
	}

	if err := r.Run(port); err != nil {
		panic(err)
	}
}

func (s *SNS) lookup(c *gin.Context) {
	domain := c.Query("domain")
	start := time.Now()
	defer func() {
		lookupDuration.Observe(time.Since(start).Seconds())
	}()

	if data, err := s.lookupC.Cache.Get(domain); err == nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
		return
	}

	res, err := s.resolver.Lookup(c.Request.Context(), domain)
	if err != nil {
		// could not determine, distinct from "not registered"
		upstreamResponse(c, err)
		return
	}

	data, err := json.Marshal(res)
	if err != nil {
		internalErrorResponse(c, err.Error())
		return
	}
	if err := s.lookupC.Cache.Set(domain, data); err != nil {
		log.Warn("cache lookup result failed", "domain", domain, "err", err)
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (s *SNS) postContract(c *gin.Context) {
	command := c.Param("command")
	ctx := c.Request.Context()

	var (
		tx        *txn.Transaction
		domain    string
		requester string
		err       error
	)

	switch command {
	case schema.CmdRegister:
		req := schema.RegisterRequest{}
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, err.Error())
			return
		}
		domain, requester = req.Domain, req.UserAccount
		tx, err = s.contract.Register(ctx, req)

	case schema.CmdSubregister:
		req := schema.SubregisterRequest{}
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, err.Error())
			return
		}
		domain, requester = req.Label+"."+req.Domain, req.UserAccount
		tx, err = s.contract.Subregister(ctx, req)

	case schema.CmdTransfer:
		req := schema.TransferRequest{}
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, err.Error())
			return
		}
		domain, requester = req.Domain, req.UserAccount
		tx, err = s.contract.Transfer(ctx, req)

	case schema.CmdModify:
		req := schema.ModifyRequest{}
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, err.Error())
			return
		}
		requester = req.UserAccount
		tx, err = s.contract.Modify(ctx, req)

	default:
		errorResponse(c, schema.ErrUnknownCommand.Error())
		return
	}

	metricContract(command, err)
	if err != nil {
		if schema.IsBusinessError(err) {
			errorResponse(c, err.Error())
		} else {
			upstreamResponse(c, err)
		}
		return
	}
	if tx == nil {
		// profile diff came out empty, nothing to submit
		c.Status(http.StatusNoContent)
		return
	}

	// The service co-signs everything sequenced or arbitrated by the
	// registrar; profile edits run purely on the user's account.
	if command != schema.CmdModify {
		tx.Sign(s.signer)
	}

	envelope, err := tx.Envelope()
	if err != nil {
		internalErrorResponse(c, err.Error())
		return
	}

	s.archiveEnvelope(command, domain, requester, tx, envelope)

	c.JSON(http.StatusOK, schema.ContractResult{
		XDR:               envelope,
		NetworkPassphrase: s.cfg.NetworkPassphrase,
	})
}

// archiveEnvelope records the built envelope for audit: blob in the raw
// store, row in the order db, event on the stream. Archiving is
// best-effort and never fails the request.
func (s *SNS) archiveEnvelope(command, domain, requester string, tx *txn.Transaction, envelope string) {
	hash := tx.HashHex()
	if err := s.store.SaveEnvelope(hash, envelope); err != nil {
		log.Warn("save envelope failed", "hash", hash, "err", err)
	}
	order := schema.EnvelopeOrder{
		Command:   command,
		Domain:    domain,
		Requester: requester,
		Memo:      tx.Memo(),
		Hash:      hash,
		Network:   s.cfg.NetworkPassphrase,
	}
	if err := s.wdb.InsertOrder(order); err != nil {
		log.Warn("insert order failed", "hash", hash, "err", err)
	}
	if s.events != nil {
		event := schema.EnvelopeEvent{
			Command:   command,
			Domain:    domain,
			Requester: requester,
			Memo:      tx.Memo(),
			Hash:      hash,
			Timestamp: time.Now().Unix(),
		}
		body, _ := json.Marshal(event)
		if err := s.events.Write(body); err != nil {
			log.Warn("publish envelope event failed", "hash", hash, "err", err)
		}
	}
}

func (s *SNS) getOrders(c *gin.Context) {
	account := c.Param("account")
	page, _ := strconv.Atoi(c.Query("page"))

	orders, err := s.wdb.GetOrdersByAccount(account, page, 20)
	if err != nil {
		internalErrorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *SNS) getEnvelope(c *gin.Context) {
	hash := c.Param("hash")
	envelope, err := s.store.LoadEnvelope(hash)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, schema.ContractResult{
		XDR:               envelope,
		NetworkPassphrase: s.cfg.NetworkPassphrase,
	})
}

func errorResponse(c *gin.Context, err string) {
	c.JSON(http.StatusBadRequest, schema.RespErr{
		Err: err,
	})
}

func notFoundResponse(c *gin.Context, err string) {
	c.JSON(http.StatusNotFound, schema.RespErr{
		Err: err,
	})
}

func internalErrorResponse(c *gin.Context, err string) {
	c.JSON(http.StatusInternalServerError, schema.RespErr{
		Err: err,
	})
}

// upstreamResponse reports a ledger query failure. Callers should retry
// with backoff; the state of the domain is unknown, not absent.
func upstreamResponse(c *gin.Context, err error) {
	log.Error("ledger query failed", "err", err)
	c.JSON(http.StatusBadGateway, schema.RespErr{
		Err: err.Error(),
	})
}
