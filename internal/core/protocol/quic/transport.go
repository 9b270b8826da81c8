// Package quic provides the QUIC transport. Each connection carries its
// frames over one bidirectional stream: the client opens the stream after
// dialing, the server accepts it after accepting the connection.
package quic

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"net"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/quic-go/quic-go"
	"go.uber.org/zap"

	"github.com/skeldnet/skeld/internal/core/observability/log"
	"github.com/skeldnet/skeld/internal/core/protocol"
)

// alpnProtocol is the ALPN token both sides must agree on.
const alpnProtocol = "skeld-quic"

var _ protocol.Transport = (*Transport)(nil)

// Transport implements protocol.Transport over QUIC.
type Transport struct {
	config    protocol.Config
	tlsConfig *tls.Config
	logger    log.Log
}

// NewTransport creates a QUIC transport. A nil tlsConfig generates a
// self-signed development certificate; clients then skip verification.
func NewTransport(config protocol.Config, tlsConfig *tls.Config, logger log.Log) (*Transport, error) {
	if logger == nil {
		logger = log.Provide()
	}

	if tlsConfig == nil {
		generated, err := GenerateSelfSignedTLS()
		if err != nil {
			return nil, errors.Wrap(err, "generate development TLS config")
		}
		tlsConfig = generated
	}

	return &Transport{config: config, tlsConfig: tlsConfig, logger: logger}, nil
}

func (t *Transport) Name() string {
	return "quic"
}

func (t *Transport) quicConfig() *quic.Config {
	return &quic.Config{
		MaxIdleTimeout:  t.config.ReadTimeout + t.config.KeepAlive,
		KeepAlivePeriod: t.config.KeepAlive,
	}
}

// Listen starts a QUIC listener on addr.
func (t *Transport) Listen(ctx context.Context, addr string) (protocol.Listener, error) {
	listener, err := quic.ListenAddr(addr, t.tlsConfig, t.quicConfig())
	if err != nil {
		return nil, errors.Wrap(protocol.ErrListenFailed, err.Error())
	}

	t.logger.Info("quic listener started", zap.String("addr", listener.Addr().String()))

	return &Listener{
		listener: listener,
		config:   t.config,
		logger:   t.logger.With(zap.String("listener_addr", listener.Addr().String())),
	}, nil
}

// Dial connects to a QUIC server at addr and opens the message stream.
func (t *Transport) Dial(ctx context.Context, addr string) (protocol.Conn, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: true, // development certificates are self-signed
		NextProtos:         []string{alpnProtocol},
	}

	conn, err := quic.DialAddr(ctx, addr, tlsConfig, t.quicConfig())
	if err != nil {
		return nil, errors.Wrap(protocol.ErrDialFailed, err.Error())
	}

	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		_ = conn.CloseWithError(0, "stream open failed")
		return nil, errors.Wrap(protocol.ErrDialFailed, err.Error())
	}

	return NewConn(conn, stream, t.config), nil
}

var _ protocol.Listener = (*Listener)(nil)

// Listener accepts QUIC connections and their message streams.
type Listener struct {
	listener *quic.Listener
	config   protocol.Config
	closed   atomic.Bool
	logger   log.Log
}

// Accept waits for the next connection and its message stream.
func (l *Listener) Accept(ctx context.Context) (protocol.Conn, error) {
	if l.closed.Load() {
		return nil, protocol.ErrTransportClosed
	}

	conn, err := l.listener.Accept(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "accept quic connection")
	}

	stream, err := conn.AcceptStream(ctx)
	if err != nil {
		_ = conn.CloseWithError(0, "stream accept failed")
		return nil, errors.Wrap(err, "accept quic stream")
	}

	accepted := NewConn(conn, stream, l.config)
	l.logger.Debug("connection accepted",
		zap.String("connection_id", accepted.ID()),
		zap.String("remote_addr", accepted.RemoteAddr().String()))

	return accepted, nil
}

func (l *Listener) Addr() net.Addr {
	return l.listener.Addr()
}

// Close stops the listener.
func (l *Listener) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	return l.listener.Close()
}

// GenerateSelfSignedTLS generates a self-signed TLS certificate for
// development use.
func GenerateSelfSignedTLS() (*tls.Config, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			Organization: []string{"skeld"},
		},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(365 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IPAddresses:           []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
		DNSNames:              []string{"localhost"},
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &privateKey.PublicKey, privateKey)
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		Certificates: []tls.Certificate{{
			Certificate: [][]byte{certDER},
			PrivateKey:  privateKey,
		}},
		NextProtos: []string{alpnProtocol},
		MinVersion: tls.VersionTLS13,
	}, nil
}
