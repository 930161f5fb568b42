package wipe

// ProgressInfo информация о прогрессе затирания.
// Отправляется синхронно после записи каждого чанка, до начала следующего.
type ProgressInfo struct {
	Pass         int
	TotalPasses  int
	BytesWritten uint64 // в текущем проходе
	PassSize     uint64
	Label        string
}

// ProgressSink принимает уведомления о прогрессе.
// Вызовы выполняются в потоке записи: обработчик не должен блокироваться,
// иначе затормозит запись. Для отзывчивого UI используйте неблокирующий канал.
type ProgressSink interface {
	Progress(info ProgressInfo)
}

// ProgressFunc адаптер функции к интерфейсу ProgressSink
type ProgressFunc func(info ProgressInfo)

func (f ProgressFunc) Progress(info ProgressInfo) {
	f(info)
}

// NopSink заглушка, игнорирующая прогресс
var NopSink ProgressSink = ProgressFunc(func(ProgressInfo) {})
