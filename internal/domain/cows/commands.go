package cows

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"cow-registry/internal/domain/activity"
	"cow-registry/internal/platform/logger"
	"cow-registry/internal/platform/metrics"
	"cow-registry/internal/ports/chain"
	"cow-registry/internal/ports/contentstore"
)

const (
	MsgBreeding  = "Breeding new cow on the blockchain. This may take a while..."
	MsgUploading = "Uploading media to IPFS..."
	MsgLinking   = "Linking media to the cow on the blockchain. This may take a while..."
)

// Syncer es lo que los comandos necesitan del Synchronizer.
type Syncer interface {
	Sync(ctx context.Context, owner string) (Result, error)
}

// Journal registra los comandos enviados. Puede ser nil.
type Journal interface {
	Record(ctx context.Context, in activity.RecordInput) (activity.Entry, error)
}

type CommandDeps struct {
	Writer   Writer
	Accounts chain.AccountProvider
	Content  contentstore.Store
	Sync     Syncer
	Status   StatusSink
	Journal  Journal

	Logger  logger.Logger
	Metrics *metrics.Metrics
}

// Commands traduce envíos de formularios a llamadas al contrato.
type Commands struct {
	writer   Writer
	accounts chain.AccountProvider
	content  contentstore.Store
	sync     Syncer
	status   StatusSink
	journal  Journal
	log      logger.Logger
	metrics  *metrics.Metrics
}

func NewCommands(d CommandDeps) *Commands {
	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Commands{
		writer:   d.Writer,
		accounts: d.Accounts,
		content:  d.Content,
		sync:     d.Sync,
		status:   d.Status,
		journal:  d.Journal,
		log:      log,
		metrics:  d.Metrics,
	}
}

// Refresh es la carga de página: cuenta activa + sincronización completa.
func (c *Commands) Refresh(ctx context.Context) (string, Result, error) {
	account, err := c.activeAccount(ctx)
	if err != nil {
		return "", Result{}, err
	}
	res, err := c.sync.Sync(ctx, account)
	return account, res, err
}

// Create registra un nacimiento. Si el contrato rechaza la tx no se re-sincroniza
// (el display queda como estaba) y el error crudo va al canal de estado.
func (c *Commands) Create(ctx context.Context, in BirthInput) (Tx, error) {
	account, err := c.activeAccount(ctx)
	if err != nil {
		c.metrics.ObserveCommand("create", false)
		return Tx{}, err
	}

	c.status.Info(MsgBreeding)

	tx, err := c.writer.RecordBirth(ctx, account, in)
	if err != nil {
		c.status.Fail(err)
		c.record(ctx, activity.RecordInput{
			Kind:    activity.KindBirthRecorded,
			Account: account,
			CowRef:  in.Mom,
			Detail:  birthDetail(in) + ": " + err.Error(),
			Outcome: activity.OutcomeFailed,
		})
		c.metrics.ObserveCommand("create", false)
		c.log.Error("cow birth failed", map[string]any{"account": account, "err": err})
		return Tx{}, err
	}

	c.status.Success("Successfully created " + in.Type + " !")
	c.record(ctx, activity.RecordInput{
		Kind:    activity.KindBirthRecorded,
		Account: account,
		CowRef:  fmt.Sprintf("%d", tx.CowNumber),
		Detail:  birthDetail(in),
		TxHash:  tx.Hash,
	})
	c.metrics.ObserveCommand("create", true)
	c.log.Info("cow born", map[string]any{"account": account, "cow": tx.CowNumber, "tx": tx.Hash})

	c.resync(ctx, account)
	return tx, nil
}

type UploadInput struct {
	CowID    string
	Filename string
	File     io.Reader
}

type UploadResult struct {
	ContentHash string
	Tx          Tx
}

// Upload sube el archivo al content store y asocia el CID a la vaca.
// Una falla en cualquiera de las dos etapas se muestra en el canal de estado;
// solo el éxito completo dispara la re-sincronización.
func (c *Commands) Upload(ctx context.Context, in UploadInput) (UploadResult, error) {
	account, err := c.activeAccount(ctx)
	if err != nil {
		c.metrics.ObserveCommand("upload", false)
		return UploadResult{}, err
	}

	if in.File == nil {
		err := fmt.Errorf("no file selected for cow %s", in.CowID)
		c.status.Fail(err)
		c.metrics.ObserveCommand("upload", false)
		return UploadResult{}, err
	}

	data, err := io.ReadAll(in.File)
	if err != nil {
		err = fmt.Errorf("read file: %w", err)
		c.status.Fail(err)
		c.metrics.ObserveCommand("upload", false)
		return UploadResult{}, err
	}

	c.status.Info(MsgUploading)

	hash, err := c.content.Add(ctx, bytes.NewReader(data))
	c.metrics.ObserveContentAdd(err == nil)
	if err != nil {
		c.log.Error("content store add failed", map[string]any{"cow": in.CowID, "file": in.Filename, "err": err})
		c.status.Fail(err)
		c.record(ctx, activity.RecordInput{
			Kind:    activity.KindMediaStored,
			Account: account,
			CowRef:  in.CowID,
			Detail:  in.Filename + ": " + err.Error(),
			Outcome: activity.OutcomeFailed,
		})
		c.metrics.ObserveCommand("upload", false)
		return UploadResult{}, err
	}
	c.record(ctx, activity.RecordInput{
		Kind:    activity.KindMediaStored,
		Account: account,
		CowRef:  in.CowID,
		Detail:  hash,
	})

	c.status.Info(MsgLinking)

	tx, err := c.writer.LinkMedia(ctx, account, MediaLink{CowID: in.CowID, ContentHash: hash})
	if err != nil {
		c.status.Fail(err)
		c.record(ctx, activity.RecordInput{
			Kind:    activity.KindMediaLinked,
			Account: account,
			CowRef:  in.CowID,
			Detail:  hash + ": " + err.Error(),
			Outcome: activity.OutcomeFailed,
		})
		c.metrics.ObserveCommand("upload", false)
		c.log.Error("set cow uri failed", map[string]any{"cow": in.CowID, "cid": hash, "err": err})
		return UploadResult{ContentHash: hash}, err
	}

	c.status.Success("Successfully stored media for cow " + in.CowID + " !")
	c.record(ctx, activity.RecordInput{
		Kind:    activity.KindMediaLinked,
		Account: account,
		CowRef:  in.CowID,
		Detail:  hash,
		TxHash:  tx.Hash,
	})
	c.metrics.ObserveCommand("upload", true)

	c.resync(ctx, account)
	return UploadResult{ContentHash: hash, Tx: tx}, nil
}

type TransferInput struct {
	CowID string
	To    string
}

// Transfer no transfiere nada: la transferencia de vacas no existe del lado cliente.
// Solo queda en el journal para saber que alguien la pidió.
func (c *Commands) Transfer(ctx context.Context, in TransferInput) error {
	c.log.Info("transfer requested (not implemented)", map[string]any{"cow": in.CowID, "to": in.To})

	account, err := c.accounts.ActiveAccount(ctx)
	if err != nil {
		return nil
	}
	c.record(ctx, activity.RecordInput{
		Kind:    activity.KindTransferRequested,
		Account: account,
		CowRef:  in.CowID,
		Detail:  in.To,
		Outcome: activity.OutcomeSkipped,
	})
	c.metrics.ObserveCommand("transfer", true)
	return nil
}

func (c *Commands) activeAccount(ctx context.Context) (string, error) {
	account, err := c.accounts.ActiveAccount(ctx)
	if err != nil {
		c.status.Fail(err)
		c.log.Error("active account failed", map[string]any{"err": err})
		return "", err
	}
	return account, nil
}

// resync: el estado de la sincronización ya se reporta por el canal de estado.
func (c *Commands) resync(ctx context.Context, account string) {
	if _, err := c.sync.Sync(ctx, account); err != nil {
		c.log.Warn("resync after command failed", map[string]any{"account": account, "err": err})
	}
}

func (c *Commands) record(ctx context.Context, in activity.RecordInput) {
	if c.journal == nil {
		return
	}
	if _, err := c.journal.Record(ctx, in); err != nil {
		c.log.Warn("activity journal write failed", map[string]any{"kind": in.Kind, "err": err})
	}
}

func birthDetail(in BirthInput) string {
	return fmt.Sprintf("mom=%s type=%s sex=%s", in.Mom, in.Type, in.Sex)
}
