// Package dailyreward — claim.go выдаёт награду дня не чаще раза в день.
package dailyreward

import (
	"pixelferma.ru/idle-bot/internal/common"
)

// Claim помечает награду полученной и возвращает команды-эффекты.
//
// Гарантии:
//   - nil-награда → ErrNilReward, состояние не меняется;
//   - повторный клейм в тот же день → ErrAlreadyClaimed, состояние
//     не меняется, эффекты не выдаются (никакого двойного начисления);
//   - при успехе HasClaimedToday взводится ровно один раз.
//
// Сам движок ничего не начисляет: он лишь описывает, что должно
// произойти. Вызывающий обязан сохранить состояние после применения
// эффектов; если процесс умрёт между выдачей эффектов и сохранением,
// после рестарта награда дня будет предложена снова — выдача
// гарантируется как минимум один раз, а не ровно один.
func Claim(state *StreakState, reward *GeneratedReward) ([]EffectCommand, error) {
	if reward == nil {
		return nil, common.ErrNilReward
	}
	if state.HasClaimedToday {
		return nil, common.ErrAlreadyClaimed
	}

	effects := buildEffects(reward)
	state.HasClaimedToday = true
	return effects, nil
}
