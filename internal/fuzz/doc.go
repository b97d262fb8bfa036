// Package fuzztests houses Go fuzz harnesses that run whole tag files through
// the batch pipeline (source -> driver -> fix). Its goal is to smoke test
// robustness and guard against panics or broken spans on arbitrary inputs.
//
// Назначение: загружать байты в FileSet, разбирать их построчно и чинить.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/driver, internal/fix, internal/testkit.
package fuzztests
