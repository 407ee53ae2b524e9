package common

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Code string

const (
	SUCCESS = "SUCCESS"
	FAIL    = "FAIL"
)

var BadRequestErr = fmt.Errorf("bad request")

func Response(ctx *gin.Context, status int, code Code, data interface{}) (body gin.H) {
	if code == FAIL {
		switch data.(type) {
		case string:
			body = gin.H{
				"Code":    code,
				"Message": data,
				"Data":    nil,
			}
		default:
			body = gin.H{
				"Code":    code,
				"Message": nil,
				"Data":    data,
			}
		}
		ctx.JSON(status, body)
		return body
	}
	body = gin.H{
		"Code":    code,
		"Message": nil,
		"Data":    data,
	}
	ctx.JSON(status, body)
	return body
}

func ResponseError(ctx *gin.Context, status int, err error) {
	Response(ctx, status, FAIL, err.Error())
}

func ResponseBadRequestError(ctx *gin.Context) {
	Response(ctx, http.StatusBadRequest, FAIL, BadRequestErr.Error())
}

func ResponseSuccess(ctx *gin.Context, data interface{}) {
	Response(ctx, http.StatusOK, SUCCESS, data)
}
