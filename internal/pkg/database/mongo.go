package database

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"farminventory/internal/pkg/logger"
)

// Options reúne o que o bootstrap precisa para a única tentativa de conexão.
type Options struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	SocketTimeout  time.Duration
}

// Mongo é o handle da conexão. Client é nil quando o bootstrap falhou
// (modo fallback): o servidor HTTP continua no ar sem o banco.
type Mongo struct {
	Client   *mongo.Client
	database string
	tracker  *Tracker
	log      logger.Logger
}

// Connect faz exatamente uma tentativa de conexão + ping, limitada por
// ConnectTimeout. Nunca devolve erro: falhas são logadas (URI sem senha)
// e o Tracker fica em "errored". Não há nova tentativa automática.
func Connect(ctx context.Context, opts Options, tracker *Tracker, log logger.Logger) *Mongo {
	m := &Mongo{database: opts.Database, tracker: tracker, log: log}
	fields := map[string]interface{}{
		"uri":      RedactURI(opts.URI),
		"database": opts.Database,
	}

	tracker.MarkConnecting()
	log.Info("Conectando ao MongoDB...", fields)

	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetConnectTimeout(opts.ConnectTimeout).
		SetServerSelectionTimeout(opts.ConnectTimeout).
		SetSocketTimeout(opts.SocketTimeout).
		SetServerMonitor(tracker.Monitor())

	connectCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		log.Error("Falha ao conectar ao MongoDB. Servidor seguirá em modo fallback.", err, fields)
		tracker.MarkErrored(err)
		return m
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		log.Error("MongoDB não respondeu ao ping. Servidor seguirá em modo fallback.", err, fields)
		tracker.MarkErrored(err)
		// Sem reconexão em segundo plano: fecha o client meio-aberto.
		discCtx, discCancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
		defer discCancel()
		if discErr := client.Disconnect(discCtx); discErr != nil {
			log.Warn("Falha ao descartar client MongoDB", map[string]interface{}{"error": discErr.Error()})
		}
		// Disconnect dispara TopologyClosed; o estado final é "errored".
		tracker.MarkErrored(err)
		return m
	}

	m.Client = client
	tracker.MarkConnected()
	log.Info("Conexão MongoDB estabelecida.", fields)
	return m
}

// Collection devolve o handle da coleção, ou nil em modo fallback.
func (m *Mongo) Collection(name string) *mongo.Collection {
	if m.Client == nil {
		return nil
	}
	return m.Client.Database(m.database).Collection(name)
}

// Close desconecta o client (se houver) e marca o Tracker como "disconnected".
func (m *Mongo) Close(ctx context.Context) error {
	defer m.tracker.MarkDisconnected()
	if m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}

// A senha vai até o último '@': '@' ou '/' crus na senha não escapam da máscara.
var credentialsPattern = regexp.MustCompile(`(://[^:/@]+):.*@`)

// RedactURI troca a senha da connection string por "****" antes de logar.
func RedactURI(uri string) string {
	return credentialsPattern.ReplaceAllString(uri, "${1}:****@")
}
