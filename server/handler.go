package server

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/ncobase/measure/ecode"
	"github.com/ncobase/measure/ingest"
	"github.com/ncobase/measure/logging/logger"
	"github.com/ncobase/measure/metric"
	"github.com/ncobase/measure/net/resp"
	"github.com/ncobase/measure/service"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type handler struct {
	svc    *service.Service
	logger *logger.Logger
}

// fail writes err. Not-found errors are expected and logged at debug level.
func (h *handler) fail(ctx context.Context, c *gin.Context, err error) {
	if ecode.IsNotFound(err) {
		h.logger.Debug(ctx, err)
	} else {
		h.logger.Errorf(ctx, "%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	resp.Fail(c.Writer, resp.FromError(err))
}

// readOne handles GET /api/v1/measurements/:host/:type.
func (h *handler) readOne(c *gin.Context) {
	ctx := c.Request.Context()
	m, err := h.svc.ReadLastMeasurement(ctx, c.Param("host"), metric.Type(c.Param("type")))
	if err != nil {
		h.fail(ctx, c, err)
		return
	}
	resp.Success(c.Writer, m)
}

// readHost handles GET /api/v1/hosts/:host/measurements?type=a&type=b.
func (h *handler) readHost(c *gin.Context) {
	types := c.QueryArray("type")
	if len(types) == 0 {
		resp.Fail(c.Writer, resp.InvalidParams(ecode.FieldIsRequired("type")))
		return
	}
	group := h.svc.ReadLastMeasurementsWithHostAndTypes(c.Request.Context(), c.Param("host"), metric.Types(types...)...)
	resp.Success(c.Writer, group)
}

// readMatrix handles POST /api/v1/measurements/query.
func (h *handler) readMatrix(c *gin.Context) {
	var req metric.DBRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c.Writer, resp.BadRequest(err.Error()))
		return
	}
	if err := validate.Struct(req); err != nil {
		resp.Fail(c.Writer, resp.InvalidParams(ecode.Text(ecode.ParamErr), fieldErrors(err)))
		return
	}
	resp.Success(c.Writer, h.svc.ReadLastMeasurementsWithHostsAndTypes(c.Request.Context(), req))
}

// readFleet handles GET /api/v1/measurements?type=t.
func (h *handler) readFleet(c *gin.Context) {
	t := c.Query("type")
	if t == "" {
		resp.Fail(c.Writer, resp.InvalidParams(ecode.FieldIsRequired("type")))
		return
	}
	ctx := c.Request.Context()
	readings, err := h.svc.ReadLastMeasurements(ctx, metric.Type(t))
	if err != nil {
		h.fail(ctx, c, err)
		return
	}
	resp.Success(c.Writer, readings)
}

// write handles POST /api/v1/measurements. The point is accepted before it
// is stored.
func (h *handler) write(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		resp.Fail(c.Writer, resp.BadRequest(err.Error()))
		return
	}
	p, err := ingest.Decode(body)
	if err != nil {
		resp.Fail(c.Writer, resp.BadRequest(err.Error()))
		return
	}
	h.svc.WriteMeasurement(c.Request.Context(), p.Type, p.Instance, p.Value, p.Time)
	resp.WithStatusCode(c.Writer, http.StatusAccepted, "accepted")
}

// fieldErrors maps each invalid field to the rule it broke.
func fieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"request": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		out[field] = fe.Tag()
	}
	return out
}
