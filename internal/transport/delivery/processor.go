// Package delivery доставляет уведомления из outbox во внешние системы (webhook, kafka).
package delivery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/fsdevblog/escrow-ledger/internal/metrics"
	"github.com/fsdevblog/escrow-ledger/internal/service"
	"github.com/fsdevblog/escrow-ledger/internal/transport/delivery/client"
	"github.com/sirupsen/logrus"
)

const (
	defaultServiceTimeout         = 3 * time.Second
	defaultDeliverTimeout         = 10 * time.Second
	defaultIdlePause              = time.Second
	defaultLimitPerIteration uint = 100
	defaultWorkers           uint = 5
)

// Processor доставляет сообщения outbox через Client.
type Processor struct {
	client            Client
	svs               Servicer
	l                 *logrus.Entry
	metrics           *metrics.Metrics
	limitPerIteration uint
	workers           uint
	idlePause         time.Duration
}

// New создает новый экземпляр процессора доставки.
func New(svs Servicer, c Client, l *logrus.Logger) *Processor {
	loggerEntry := l.WithFields(logrus.Fields{
		"component": "delivery",
		"module":    "processor",
	})

	return &Processor{
		svs:               svs,
		client:            c,
		l:                 loggerEntry,
		limitPerIteration: defaultLimitPerIteration,
		workers:           defaultWorkers,
		idlePause:         defaultIdlePause,
	}
}

// SetLimitPerIteration устанавливает кол-во сообщений, обрабатываемых в одной итерации.
func (p *Processor) SetLimitPerIteration(limit uint) *Processor {
	p.limitPerIteration = limit
	return p
}

// SetWorkers устанавливает кол-во воркеров доставки.
func (p *Processor) SetWorkers(workers uint) *Processor {
	if workers > 0 {
		p.workers = workers
	}
	return p
}

func (p *Processor) SetMetrics(m *metrics.Metrics) *Processor {
	p.metrics = m
	return p
}

// Run запускает доставку в цикле до отмены контекста.
//
// Алгоритм работы:
//  1. В каждой итерации запрашивает через сервисный слой сообщения, срок доставки которых наступил. Объем
//     лимитируется через SetLimitPerIteration.
//  2. Сообщения раздаются N воркерам (SetWorkers), каждый доставляет уведомление через Client.
//  3. Результаты фиксируются через сервисный слой: доставленные помечаются, для остальных планируется повтор.
func (p *Processor) Run(ctx context.Context) error {
	p.l.WithFields(logrus.Fields{
		"limitPerIteration": p.limitPerIteration,
		"workers":           p.workers,
	}).Info("Starting")

	for {
		err := p.process(ctx)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNoMessages) && !errors.Is(err, context.Canceled) {
			p.l.WithError(err).Error("process error")
		}
		// пауза, чтобы не опрашивать хранилище впустую
		select {
		case <-ctx.Done():
			p.l.Info("Got stop signal, exiting...")
			return nil
		case <-time.After(p.idlePause):
		}
	}
}

// process выполняет один цикл доставки. Возвращает ErrNoMessages, если доставлять нечего.
func (p *Processor) process(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}
	messages, produceErr := p.produce(ctx)
	if produceErr != nil {
		return fmt.Errorf("process: %w", produceErr)
	}

	results := p.runWorkers(ctx, messages)
	if len(results) == 0 {
		return nil
	}

	updates := make([]service.DeliveryResult, len(results))
	for i, result := range results {
		updates[i] = service.DeliveryResult{ID: result.Message.ID, Error: result.Error}
	}

	// результаты фиксируем и после отмены контекста, иначе доставленное уйдет повторно
	reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultServiceTimeout)
	defer cancel()

	if updErr := p.svs.CompleteDeliveries(reqCtx, updates); updErr != nil {
		return fmt.Errorf("process: %s", updErr.Error())
	}
	return nil
}

// workerResult результат доставки одного сообщения.
type workerResult struct {
	WorkerID uint
	Message  *domain.OutboxMessage
	Error    error
}

// runWorkers раздает сообщения воркерам и ждет конца их работы (fan-out/fan-in).
func (p *Processor) runWorkers(ctx context.Context, messages []domain.OutboxMessage) []workerResult {
	var taskCh = make(chan *domain.OutboxMessage, len(messages))
	for i := range messages {
		taskCh <- &messages[i]
	}
	close(taskCh)

	wg := new(sync.WaitGroup)
	wg.Add(int(p.workers)) // nolint:gosec

	var resultCh = make(chan *workerResult, len(messages))
	for i := range p.workers {
		go p.worker(ctx, wg, i+1, taskCh, resultCh)
	}
	wg.Wait()
	close(resultCh)

	var results = make([]workerResult, 0, len(messages))
	for result := range resultCh {
		l := p.l.WithFields(logrus.Fields{
			"worker":    result.WorkerID,
			"messageID": result.Message.ID,
			"attempt":   result.Message.Attempts + 1,
		})
		if result.Error != nil {
			l.WithError(result.Error).Warn("deliver notification")
			p.metrics.IncDelivery("failed")
		} else {
			l.Debug("Delivered")
			p.metrics.IncDelivery("delivered")
		}
		results = append(results, *result)
	}
	return results
}

func (p *Processor) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	workerID uint,
	taskCh <-chan *domain.OutboxMessage,
	resultCh chan<- *workerResult,
) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-taskCh:
			if !ok {
				return
			}
			resultCh <- p.processWorkerTask(ctx, workerID, task)
		}
	}
}

// processWorkerTask доставляет уведомление. На ответ 429 ждет время из заголовка Retry-After и повторяет.
func (p *Processor) processWorkerTask(
	ctx context.Context,
	workerID uint,
	task *domain.OutboxMessage,
) *workerResult {
	result := workerResult{WorkerID: workerID, Message: task}
	for {
		reqCtx, cancel := context.WithTimeout(ctx, defaultDeliverTimeout)
		err := p.client.Deliver(reqCtx, task.Notification)
		cancel()

		var tooManyReq *client.TooManyRequestError
		if err != nil && errors.As(err, &tooManyReq) {
			select {
			case <-ctx.Done():
				result.Error = ctx.Err()
				return &result
			case <-time.After(tooManyReq.RetryAfter):
				continue
			}
		}
		result.Error = err
		return &result
	}
}

// produce получает сообщения для доставки. Возвращает ErrNoMessages, если их нет.
func (p *Processor) produce(ctx context.Context) ([]domain.OutboxMessage, error) {
	produceCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
	defer cancel()

	messages, err := p.svs.PendingDeliveries(produceCtx, p.limitPerIteration)
	if err != nil {
		return nil, fmt.Errorf("produce: %w", err)
	}
	if len(messages) == 0 {
		return nil, ErrNoMessages
	}
	return messages, nil
}
