package gateway

import (
	"bytes"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/decentraland/thirdparty-registry/src/gateway/response"
	"github.com/decentraland/thirdparty-registry/src/utils/eth"
	. "github.com/decentraland/thirdparty-registry/src/utils/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
)

const (
	HeaderCallerAddress   = "X-Caller-Address"
	HeaderCallerExpiry    = "X-Caller-Expiry"
	HeaderCallerSignature = "X-Caller-Signature"

	contextKeyCaller = "caller"
)

var (
	ErrMissingCaller   = errors.New("missing caller headers")
	ErrInvalidCaller   = errors.New("invalid caller address")
	ErrInvalidExpiry   = errors.New("invalid caller expiry")
	ErrExpired         = errors.New("caller signature expired")
	ErrExpiryTooFar    = errors.New("caller signature expiry too far in the future")
	ErrCallerMismatch  = errors.New("signature doesn't match the caller")
	ErrSignatureReplay = errors.New("caller signature already used")
	ErrBodyNotReadable = errors.New("failed to read request body")
	ErrBodyTooLarge    = errors.New("request body too large")
)

// Message signed by the caller of a write endpoint
func CallerMessage(method, path string, expiry int64, body []byte) []byte {
	return []byte(fmt.Sprintf("%s\n%s\n%d\n%s", method, path, expiry, crypto.Keccak256Hash(body).Hex()))
}

// Sets the caller headers on a request to a write endpoint
func SignRequest(req *http.Request, key *ecdsa.PrivateKey, expiry int64, body []byte) (err error) {
	signature, err := eth.Sign(eth.TextHash(CallerMessage(req.Method, req.URL.Path, expiry, body)), key)
	if err != nil {
		return
	}

	req.Header.Set(HeaderCallerAddress, crypto.PubkeyToAddress(key.PublicKey).Hex())
	req.Header.Set(HeaderCallerExpiry, strconv.FormatInt(expiry, 10))
	req.Header.Set(HeaderCallerSignature, hexutil.Encode(signature))
	return
}

func (self *Server) resolveCaller(c *gin.Context) (caller common.Address, err error) {
	address := c.GetHeader(HeaderCallerAddress)
	expiryHeader := c.GetHeader(HeaderCallerExpiry)
	signatureHeader := c.GetHeader(HeaderCallerSignature)
	if address == "" || expiryHeader == "" || signatureHeader == "" {
		return caller, ErrMissingCaller
	}

	if !common.IsHexAddress(address) {
		return caller, ErrInvalidCaller
	}
	caller = common.HexToAddress(address)

	expiry, err := strconv.ParseInt(expiryHeader, 10, 64)
	if err != nil {
		return caller, ErrInvalidExpiry
	}
	now := self.now()
	if expiry < now.Unix() {
		return caller, ErrExpired
	}
	if time.Unix(expiry, 0).Sub(now) > self.Config.Gateway.SignatureMaxAge {
		return caller, ErrExpiryTooFar
	}

	signature, err := hexutil.Decode(signatureHeader)
	if err != nil {
		return caller, fmt.Errorf("%w: %w", eth.ErrInvalidSignature, err)
	}

	reader := c.Request.Body
	if self.Config.Gateway.MaxBodySize > 0 {
		reader = http.MaxBytesReader(c.Writer, reader, self.Config.Gateway.MaxBodySize)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return caller, ErrBodyTooLarge
		}
		return caller, ErrBodyNotReadable
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	digest := eth.TextHash(CallerMessage(c.Request.Method, c.Request.URL.Path, expiry, body))
	signer, err := eth.RecoverSigner(digest, signature)
	if err != nil {
		return
	}
	if signer != caller {
		return caller, ErrCallerMismatch
	}

	// Each signature is accepted once while it's valid
	ttl := time.Unix(expiry, 0).Sub(now) + time.Second
	if self.replays.Add(digest.Hex(), struct{}{}, ttl) != nil {
		return caller, ErrSignatureReplay
	}

	return
}

// Resolves the caller of a write endpoint from the signed headers
func (self *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := self.resolveCaller(c)
		if err != nil {
			status, code := http.StatusUnauthorized, "INVALID_CALLER"
			switch {
			case errors.Is(err, ErrSignatureReplay):
				status = http.StatusConflict
				self.monitor.GetReport().Gateway.Errors.ReplayedCall.Inc()
			case errors.Is(err, ErrBodyTooLarge):
				status, code = http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE"
				self.monitor.GetReport().Gateway.Errors.InvalidCaller.Inc()
			default:
				self.monitor.GetReport().Gateway.Errors.InvalidCaller.Inc()
			}

			LOG(c).WithError(err).Info("Caller rejected")
			c.AbortWithStatusJSON(status, &response.Error{Code: code, Message: err.Error()})
			return
		}

		c.Set(contextKeyCaller, caller)
		c.Set(ContextKeyLog, LOG(c).WithField("caller", caller.Hex()))
		c.Next()
	}
}

func getCaller(c *gin.Context) common.Address {
	v, _ := c.Get(contextKeyCaller)
	caller, _ := v.(common.Address)
	return caller
}
