package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"devdeck/internal/tools"
)

type textRequest struct {
	Input string `json:"input"`
}

type jsonFormatRequest struct {
	Input  string `json:"input"`
	Indent int    `json:"indent"`
}

type JSONToolResponse struct {
	Output string `json:"output,omitempty"`
	Valid  bool   `json:"valid"`
	Error  string `json:"error,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// jsonFailure reports invalid input with its position so the editor can highlight it.
func jsonFailure(c *gin.Context, input string) {
	res := tools.ValidateJSON(input)
	c.JSON(http.StatusBadRequest, JSONToolResponse{
		Valid:  false,
		Error:  res.Error,
		Line:   res.Line,
		Column: res.Column,
	})
}

func (h *Handler) formatJSON(c *gin.Context) {
	var req jsonFormatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Indent < 0 || req.Indent > 8 {
		badRequest(c, "indent must be between 0 and 8")
		return
	}
	out, err := tools.FormatJSON(req.Input, req.Indent)
	if err != nil {
		jsonFailure(c, req.Input)
		return
	}
	c.JSON(http.StatusOK, JSONToolResponse{Output: out, Valid: true})
}

func (h *Handler) minifyJSON(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	out, err := tools.MinifyJSON(req.Input)
	if err != nil {
		jsonFailure(c, req.Input)
		return
	}
	c.JSON(http.StatusOK, JSONToolResponse{Output: out, Valid: true})
}

// validateJSON always answers 200; the verdict is in the body.
func (h *Handler) validateJSON(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	res := tools.ValidateJSON(req.Input)
	c.JSON(http.StatusOK, JSONToolResponse{
		Valid:  res.Valid,
		Error:  res.Error,
		Line:   res.Line,
		Column: res.Column,
	})
}

type base64Request struct {
	Input   string `json:"input"`
	URLSafe bool   `json:"urlSafe"`
}

func (h *Handler) encodeBase64(c *gin.Context) {
	var req base64Request
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"output": tools.EncodeBase64(req.Input, req.URLSafe)})
}

func (h *Handler) decodeBase64(c *gin.Context) {
	var req base64Request
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	out, err := tools.DecodeBase64(req.Input, req.URLSafe)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"output": out})
}

type hashRequest struct {
	Input     string `json:"input"`
	Algorithm string `json:"algorithm"`
}

func (h *Handler) hashAlgorithms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"algorithms": tools.Algorithms()})
}

// hash computes one digest when algorithm is set, otherwise all of them.
func (h *Handler) hash(c *gin.Context) {
	var req hashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.Algorithm) != "" {
		alg, err := tools.ParseAlgorithm(req.Algorithm)
		if err != nil {
			h.writeError(c, err)
			return
		}
		sum, err := tools.Hash(alg, req.Input)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"hashes": map[tools.Algorithm]string{alg: sum}})
		return
	}
	sums, err := tools.HashAll(c.Request.Context(), req.Input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hashes": sums})
}

type uuidRequest struct {
	Count     int  `json:"count"`
	Uppercase bool `json:"uppercase"`
	NoHyphens bool `json:"noHyphens"`
}

// uuidOwner keys UUID history by session, falling back to the client address.
func uuidOwner(c *gin.Context) string {
	if s := sessionFrom(c); s != nil {
		return s.Owner()
	}
	return "anon:" + c.ClientIP()
}

func (h *Handler) generateUUIDs(c *gin.Context) {
	req := uuidRequest{Count: 1}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	owner := uuidOwner(c)
	ids, err := h.UUIDs.Generate(owner, req.Count, tools.UUIDFormat{
		Uppercase: req.Uppercase,
		NoHyphens: req.NoHyphens,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"uuids": ids, "history": h.UUIDs.History(owner)})
}

func (h *Handler) uuidHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": h.UUIDs.History(uuidOwner(c))})
}

func (h *Handler) clearUUIDHistory(c *gin.Context) {
	h.UUIDs.Clear(uuidOwner(c))
	c.Status(http.StatusNoContent)
}

type timestampRequest struct {
	Input    string `json:"input"`
	Timezone string `json:"timezone"`
}

type TimestampResponse struct {
	Unix      int64  `json:"unix"`
	UnixMilli int64  `json:"unixMilli"`
	ISO8601   string `json:"iso8601"`
	UTC       string `json:"utc"`
	Local     string `json:"local"`
	Zone      string `json:"zone"`
	Relative  string `json:"relative"`
}

func conversionToResponse(conv tools.TimestampConversion) TimestampResponse {
	return TimestampResponse{
		Unix:      conv.Unix,
		UnixMilli: conv.UnixMilli,
		ISO8601:   conv.ISO8601,
		UTC:       conv.UTC,
		Local:     conv.Local,
		Zone:      conv.Zone,
		Relative:  conv.Relative,
	}
}

func (h *Handler) location(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		return h.Location, nil
	}
	return time.LoadLocation(name)
}

func (h *Handler) convertTimestamp(c *gin.Context) {
	var req timestampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	loc, err := h.location(req.Timezone)
	if err != nil {
		badRequest(c, "unknown timezone "+req.Timezone)
		return
	}
	conv, err := tools.ParseTimestamp(req.Input, h.Now(), loc)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversionToResponse(conv))
}

func (h *Handler) timestampNow(c *gin.Context) {
	loc, err := h.location(c.Query("timezone"))
	if err != nil {
		badRequest(c, "unknown timezone "+c.Query("timezone"))
		return
	}
	now := h.Now()
	c.JSON(http.StatusOK, conversionToResponse(tools.ConvertTime(now, now, loc)))
}

func (h *Handler) formatSQL(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"output": tools.FormatSQL(req.Input)})
}
