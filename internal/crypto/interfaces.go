package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/channel_keys_mock.go -package=mock

// ChannelKeyService отвечает за всю криптографию канала между двумя
// устройствами. Он не знает ничего о сети, тикетах или протоколе синка.
// Его единственная задача — выводить ключи сеанса и запечатывать кадры.
//
// Схема работы:
//
//	Secret    = GeneratePairingSecret()                (Шаг 1, инициатор)
//	Keys      = DeriveSessionKeys(secret, sessionID)   (Шаг 2, обе стороны)
//	Frame     = Seal(key, counter, plaintext)          (Шаг 3, отправка)
//	Plaintext = Open(key, counter, frame)              (Шаг 3, приём)
type ChannelKeyService interface {
	// GeneratePairingSecret генерирует случайный секрет пары (32 байта).
	// Секрет передаётся вне канала — внутри offer-кода — и живёт ровно
	// один сеанс.
	// Шаг 1.
	GeneratePairingSecret() ([]byte, error)

	// DeriveSessionKeys выводит два направленных ключа из секрета через
	// HKDF-SHA256. Соль — идентификатор сеанса, поэтому один и тот же
	// секрет в разных сеансах даёт разные ключи.
	// Шаг 2.
	DeriveSessionKeys(secret []byte, sessionID string) (SessionKeys, error)

	// Seal шифрует кадр направленным ключом через ChaCha20-Poly1305.
	// Nonce строится из счётчика кадров: счётчик не должен повторяться
	// в пределах одного ключа.
	// Шаг 3.
	Seal(key []byte, counter uint64, plaintext []byte) ([]byte, error)

	// Open расшифровывает кадр и проверяет тег аутентичности. Ошибка
	// почти всегда означает чужой секрет или повреждённый кадр.
	// Шаг 3.
	Open(key []byte, counter uint64, ciphertext []byte) ([]byte, error)
}

// SessionKeys are the directional frame keys of one sync session. Each side
// seals with the key of its own role and opens with the partner's, so a
// reflected frame can never authenticate.
type SessionKeys struct {
	// InitiatorToJoiner seals frames sent by the offer-creating side.
	InitiatorToJoiner []byte

	// JoinerToInitiator seals frames sent by the answering side.
	JoinerToInitiator []byte
}
