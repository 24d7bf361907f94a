/*
Package decomposition provides principal component analysis (PCA).

PCA は中心化したデータを特異値分解し、分散の大きい方向から順に主成分を選ぶ。
Fit はハイパーパラメータを持つ PCA から不変の PCAModel を作るので、学習済みモデルは
複数の goroutine から同時に使ってよい。

Component selection:

  - AllComponents keeps min(n_samples-1, n_features) components.
  - FixedComponents(k) keeps exactly k components.
  - VarianceThreshold(p) keeps the smallest prefix whose cumulative explained
    variance ratio reaches p.

The decomposition routine is swappable through WithSolver: SVDSolver (default),
EigenSolver and JacobiSolver all yield the same model up to floating point error.
Component signs are fixed so that the entry with the largest magnitude in every
component is positive.

Example:

	pca := decomposition.NewPCA(decomposition.VarianceThreshold(0.95))
	m, err := pca.Fit(X)
	if err != nil {
		return err
	}
	Z, err := m.Transform(X)
*/
package decomposition
